// Package store provides change-suppressing reactive stores.
//
// Every store holds a current value and a list of subscribers. Subscribers
// are called with the current value when they subscribe and afterwards only
// when the value genuinely changes. Values are compared structurally with
// Equal, so two distinct slices holding the same elements count as equal.
//
// # Writable
//
//	s := store.NewWritable("vs")
//	stop := s.Subscribe(func(theme string) { fmt.Println(theme) }) // prints "vs"
//	s.Set("vs")      // no notification
//	s.Set("vs-dark") // prints "vs-dark"
//	stop()
//
// # MultiMode
//
// A MultiMode store routes each genuine change to the handler registered for
// the caller's intent, in addition to the generic subscribers. The intent is
// supplied by the caller, not derived from the value:
//
//	value := store.NewMultiMode("", map[Intent]func(string){
//		IntentProp:   applyToEditor,
//		IntentEngine: emitChange,
//	})
//	value.Set(IntentEngine, typed) // user typing, only emitChange runs
//
// # Previous
//
// A Previous store publishes the value that was staged before the latest
// accepted update. After Set(a), Set(b), Set(c) on a store created with init,
// subscribers have observed init, a and b; c stays staged until the next
// accepted update.
//
// # Thread Safety
//
// All stores are safe for concurrent use. Callbacks run without any store
// lock held and may call back into the store.
package store
