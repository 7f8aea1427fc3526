// Package store holds the in-memory collection of chats and the
// active-chat pointer. It is the sole source of truth for conversation
// state; renderers project it and never feed state back.
//
// Invariants:
// - The chat counter only increases and is never reused after deletion.
// - A chat never holds more than the configured message cap; the oldest
//   message is evicted first.
// - While any chat exists, the active pointer references an existing chat.
// - Deleting the last remaining chat is rejected.
//
// Usage:
//
//	st := store.New()
//	id := st.CreateChat("")
//	_ = st.AppendMessage(id, "hello", true)
//	active := st.GetActive()
//	_ = active
package store
