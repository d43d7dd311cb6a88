package keys

// Releaser is anything holding secret material that Release wipes.
type Releaser interface {
	Release()
}

// Use runs fn with k and releases k on every exit path, including panics.
func Use[K Releaser](k K, fn func(K) error) error {
	defer k.Release()
	return fn(k)
}

// Load obtains a key with open and hands it to fn under Use. If open fails,
// fn is not called.
func Load[K Releaser](open func() (K, error), fn func(K) error) error {
	k, err := open()
	if err != nil {
		return err
	}
	return Use(k, fn)
}
