// Package snapshot stores rendered HTML snapshots of a tree.
//
// A Store maps snapshot names to bytes. FileStore keeps them in a local
// directory; S3Store keeps them in an S3 (or S3-compatible) bucket:
//
//	store, err := snapshot.Open(cfg)
//	if err != nil {
//	    return err
//	}
//	html, _ := render.HTMLString(doc.Root())
//	err = store.Put(ctx, "todo-final.html", []byte(html))
//
// Names are flat: letters, digits, dot, dash and underscore.
package snapshot
