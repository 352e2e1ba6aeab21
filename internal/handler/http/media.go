package http

import (
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"
)

const mediaPrefix = "/media/"

// mediaHandler serves stored images from dir. Directories are never listed.
// Files whose extension is not an image type are sent as an attachment-safe
// octet stream, and content sniffing is disabled.
func mediaHandler(dir string) http.Handler {
	root := os.DirFS(dir)
	files := http.FileServerFS(root)

	return http.StripPrefix(mediaPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "" || !fs.ValidPath(name) {
			notFound(w, r)
			return
		}

		info, err := fs.Stat(root, name)
		if err != nil || info.IsDir() {
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				writeError(w, r, err, "mediaHandler")
				return
			}
			notFound(w, r)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		if !strings.HasPrefix(mime.TypeByExtension(path.Ext(name)), "image/") {
			w.Header().Set("Content-Type", "application/octet-stream")
		}

		files.ServeHTTP(w, r)
	}))
}
