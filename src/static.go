package game

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
)

// StaticFileServer serves the browser client from dir. A missing directory
// is a fatal initialization error: the game cannot render without it.
func StaticFileServer(dir string, fallbackPath string) http.Handler {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Fatalf("Static directory does not exist: %s", dir)
	}

	fs := http.FileServer(http.Dir(dir))

	// Serve real files directly; everything else falls back to the SPA
	// entry point so the client-side router can handle it.
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(filepath.Join(dir, r.URL.Path)); err == nil {
			fs.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir, fallbackPath))
	})
}

// ResolveTextures filters a texture manifest down to the files that actually
// exist under dir. Missing textures are not an error: the client falls back
// to its solid-color palette.
func ResolveTextures(dir string, manifest map[string]string) map[string]string {
	resolved := make(map[string]string, len(manifest))
	for name, rel := range manifest {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			log.Printf("Texture %q missing (%s), client will use solid color", name, rel)
			continue
		}
		resolved[name] = rel
	}
	return resolved
}
