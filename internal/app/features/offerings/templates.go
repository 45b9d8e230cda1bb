// internal/app/features/offerings/templates.go
package offerings

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "offerings",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
