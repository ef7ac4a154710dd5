// Package registrar sequences items (form fields) along a chain that can be
// rewired while it is being walked.
//
// A Registrar is an arena of nodes addressed by Key. Each node links to its
// neighbours by key, never by pointer, and nodes are never removed: a node
// that the walk bypasses stays in the arena and is recorded in the orphaned
// index for auditing.
//
// # Walking
//
//	r := registrar.New[*field.Field]()
//	r.Put(name)
//	r.Put(email)
//	for f, ok := r.Get(); ok; f, ok = r.Get() {
//	    // serve f
//	}
//
// # Rewiring
//
// While a node is running, hooks may change what comes next:
//
//   - Insert splices new nodes before the running node's successor
//   - Branch links new nodes and snapshots the chain they displace
//   - Merge resumes the displaced chain from inside a branch
//   - Skip bypasses pending nodes
//   - Restart serves the running node again
//
// Branching twice from the same origin keeps only the latest snapshot.
//
// # Thread Safety
//
// All methods lock the registrar, so hooks running on update-handler
// goroutines may call them.
package registrar
