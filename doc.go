// Package authstate wires a reactive authentication store to a GoTrue compatible
// identity provider.
//
// The package is an umbrella over the building blocks in its sub-packages:
//   - state: observable single-value container
//   - retry: bounded exponential backoff
//   - session: identity provider contract and payloads
//   - authstore: the store that projects sessions into application users
//   - provider/gotrue: HTTP session source
//
// Example:
//
//	cfg, _ := config.Load(ctx, "authstate.yaml")
//	store, _, _ := authstate.New(cfg)
//	if err := store.Init(ctx); err != nil {
//		return err
//	}
//	err := store.Register(ctx, "a@b.com", "", "Al")
package authstate
