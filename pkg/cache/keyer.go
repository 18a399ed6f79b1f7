package cache

// RunKeyOpts holds everything that determines the outcome of a seeded run.
type RunKeyOpts struct {
	SimulationID      string
	Seed              uint64
	Population        int
	Generations       int
	MutationRate      float64
	ElitismRates      []float64
	Crossover         string
	RandomOrientation bool
	Points            [][2]float64
}

// Keyer derives cache keys.
type Keyer interface {
	// RunKey returns the key of a run's ledger.
	RunKey(opts RunKeyOpts) string

	// ArtifactKey returns the key of an artifact rendered from source in
	// the given format.
	ArtifactKey(sourceHash, format string) string
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RunKey implements [Keyer].
func (DefaultKeyer) RunKey(opts RunKeyOpts) string {
	return hashKey("run", opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(sourceHash, format string) string {
	return hashKey("artifact", sourceHash, format)
}

// ScopedKeyer prefixes every key of an inner keyer, so several deployments
// can share one backend.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "beeline:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RunKey implements [Keyer].
func (k *ScopedKeyer) RunKey(opts RunKeyOpts) string {
	return k.prefix + k.inner.RunKey(opts)
}

// ArtifactKey implements [Keyer].
func (k *ScopedKeyer) ArtifactKey(sourceHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(sourceHash, format)
}

var (
	_ Keyer = DefaultKeyer{}
	_ Keyer = (*ScopedKeyer)(nil)
)
