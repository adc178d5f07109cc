// Package web embebe el formulario de cadastro (HTML + script + estilos).
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// Static devuelve el FS con index.html, script.js y style.css en la raíz.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// sólo falla si el directorio embebido no existe (error de build)
		panic(err)
	}
	return sub
}

func Handler() http.Handler {
	return http.FileServer(http.FS(Static()))
}
