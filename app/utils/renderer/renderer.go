package renderer

import (
	"html/template"

	"github.com/gamectrl/storefront/app/utils/format"
	"github.com/unrolled/render"
)

func New() *render.Render {
	return NewWithDir("templates")
}

func NewWithDir(dir string) *render.Render {
	return render.New(render.Options{
		Directory:  dir,
		Layout:     "layout",
		Extensions: []string{".html"},
		Funcs: []template.FuncMap{
			{
				"usd": format.FormatUSD,
				"add": func(a, b int) int { return a + b },
				"sub": func(a, b int) int { return a - b },
				"mul": func(a, b int) int { return a * b },
			},
		},
	})
}
