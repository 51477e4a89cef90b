package router

import (
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"newsroom/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

var views = []string{
	"news/list.html",
	"news/detail.html",
	"news/create.html",
	"auth/login.html",
	"auth/register.html",
	"contacts.html",
	"error.html",
	"admin/list.html",
	"admin/news_form.html",
	"admin/category_form.html",
}

// LoadTemplates builds one template set per view: the base layout, every
// include, then the view. Views are registered under their path relative to
// templates/views, which is the name handlers render.
func LoadTemplates(fsys fs.FS, siteName string) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	includes, err := fs.Glob(fsys, "templates/includes/*.html")
	if err != nil {
		return nil, err
	}

	funcMap := templateFuncs(siteName)
	for _, view := range views {
		files := append([]string{"templates/layouts/base.html"}, includes...)
		files = append(files, "templates/views/"+view)

		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", view, err)
		}
		r.Add(view, tmpl)
	}
	return r, nil
}

func templateFuncs(siteName string) template.FuncMap {
	return template.FuncMap{
		"siteName": func() string { return siteName },
		"year":     func() int { return time.Now().Year() },
		"dict": func(values ...any) (map[string]any, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006 15:04")
		},
		"excerpt": utils.Excerpt,
	}
}
