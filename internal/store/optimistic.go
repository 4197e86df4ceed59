package store

// apply runs the optimistic update protocol shared by every field edit:
// read the current value, set the new one so the UI reflects it
// immediately, persist remotely, and restore the previous value when the
// persist call rejects. The revert happens before the error is returned,
// never deferred.
func apply[T any](get func() (T, error), set func(T), next T, persist func() error) error {
	prev, err := get()
	if err != nil {
		return err
	}
	set(next)
	if err := persist(); err != nil {
		set(prev)
		return err
	}
	return nil
}
