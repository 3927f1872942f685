package softgl

import (
	"log"
	"path/filepath"

	"github.com/cenkalti/backoff/v4"
	"github.com/fsnotify/fsnotify"
)

// startWatcher reloads the mesh whenever the watched file changes, so the
// viewer follows an external editor. Watch failures only disable reloading.
func (v *Viewer) startWatcher(path string) {
	watcher, err := newFsWatcher()
	if err != nil {
		log.Println("[softgl] file watching unavailable:", err)
		return
	}
	// Watch the directory: most editors replace the file, which drops the
	// watch if it is set on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		log.Println("[softgl] watch", path, "failed:", err)
		_ = watcher.Close()
		return
	}
	v.watchClose = func() { _ = watcher.Close() }
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
					continue
				}
				v.reloadMesh(path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Println("[softgl] watcher:", err)
			}
		}
	}()
}

// reloadMesh re-reads the OBJ file, retrying with exponential backoff while
// the writer still holds it half-written.
func (v *Viewer) reloadMesh(path string) {
	var mesh *Mesh
	load := func() error {
		m, err := NewMeshFromOBJ(path)
		if err != nil {
			return err
		}
		mesh = m
		return nil
	}
	if err := backoff.Retry(load, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 8)); err != nil {
		log.Println("[softgl] reloading", path, "failed:", err)
		return
	}
	v.meshLock.Lock()
	v.mesh = mesh
	v.meshLock.Unlock()
	log.Println("[softgl] reloaded", path)
	v.rerender()
}
