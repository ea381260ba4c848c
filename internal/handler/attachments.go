package handler

import (
	"net/http"
	"strings"
)

// Attachments serves stored intake attachments from dir under prefix as
// downloads. Directories are not listed.
func Attachments(prefix, dir string) http.HandlerFunc {
	root := http.Dir(dir)
	files := http.StripPrefix(prefix, http.FileServer(root))
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, prefix)
		f, err := root.Open(name)
		if err != nil {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		fi, err := f.Stat()
		f.Close()
		if err != nil || fi.IsDir() {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		w.Header().Set("Content-Disposition", "attachment")
		files.ServeHTTP(w, r)
	}
}
