// Package scaffold creates new quill sites from embedded template files.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/eringen/quill/content"
	"github.com/eringen/quill/typography"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// Data holds the template variables passed to every scaffold template.
type Data struct {
	ProjectName string
	SiteName    string
	SiteURL     string
	Date        string
}

// NewData derives template data from the project name, which may be a path.
// The last path segment names the project directory.
func NewData(name string, now time.Time) Data {
	dir := filepath.Base(filepath.Clean(name))
	return Data{
		ProjectName: dir,
		SiteName:    cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(dir)),
		SiteURL:     "http://localhost:3000",
		Date:        now.Format("2006-01-02"),
	}
}

// configFile is the config.yaml written into new projects. CacheTTL is a
// string so the file reads "5m" rather than nanoseconds.
type configFile struct {
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	SiteURL     string            `yaml:"siteURL"`
	Author      content.Author    `yaml:"author"`
	Social      map[string]string `yaml:"social"`
	ContentDir  string            `yaml:"contentDir"`
	StaticDir   string            `yaml:"staticDir"`
	OutputDir   string            `yaml:"outputDir"`
	Source      string            `yaml:"source"`
	CacheTTL    string            `yaml:"cacheTTL"`
	Typography  typography.Config `yaml:"typography"`
}

// Create writes a new project into dir and returns the created file paths.
// dir must not exist yet.
func Create(dir string, data Data) ([]string, error) {
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("directory %q already exists", dir)
	}

	var created []string
	root := "templates"
	err := fs.WalkDir(Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		outPath := strings.TrimSuffix(filepath.Join(dir, relPath), ".tmpl")
		switch filepath.Base(outPath) {
		case "dotenv":
			outPath = filepath.Join(filepath.Dir(outPath), ".env.example")
		case "gitignore":
			outPath = filepath.Join(filepath.Dir(outPath), ".gitignore")
		}

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		src, err := Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		tmpl, err := template.New(filepath.Base(path)).Parse(string(src))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}
		if err := writeFile(outPath, func(f *os.File) error { return tmpl.Execute(f, data) }); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}
		created = append(created, outPath)
		return nil
	})
	if err != nil {
		return created, err
	}

	cfgPath := filepath.Join(dir, "config.yaml")
	if err := writeFile(cfgPath, func(f *os.File) error {
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(defaultConfig(data)); err != nil {
			return err
		}
		return enc.Close()
	}); err != nil {
		return created, fmt.Errorf("write config: %w", err)
	}
	return append(created, cfgPath), nil
}

func defaultConfig(data Data) configFile {
	return configFile{
		Title:       data.SiteName,
		Description: "Personal blog of " + data.SiteName,
		SiteURL:     data.SiteURL,
		Author:      content.Author{Name: "Your Name", Summary: "who writes about things."},
		Social:      map[string]string{"github": "your-handle"},
		ContentDir:  "content/blog",
		StaticDir:   "public",
		OutputDir:   "dist",
		Source:      "files",
		CacheTTL:    "5m",
		Typography:  typography.DefaultConfig(),
	}
}

func writeFile(path string, fn func(*os.File) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}
