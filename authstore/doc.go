// Package authstore keeps a reactive "who is authenticated" state derived from an
// identity provider session lifecycle and exposes account operations on top of it.
//
// A Store is constructed explicitly with a session.Source, initialized once with
// Init, and then follows provider session events. Consumers read the state with
// Snapshot or subscribe to it through State:
//
//	store := authstore.New(source, authstore.WithLanguage(language.Chinese))
//	if err := store.Init(ctx); err != nil {
//		return err
//	}
//	unsubscribe := store.State().Subscribe(func(s authstore.State) {
//		fmt.Println(s.IsAuthenticated)
//	})
//	defer unsubscribe()
//
// Every operation returns an error value; Register retries transient provider
// failures with exponential backoff before giving up.
package authstore
