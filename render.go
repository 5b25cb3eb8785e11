package sesqui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"maps"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "impractical.co/sesqui"

var (
	// ErrNoTemplatePath is returned when a template path is needed, but
	// none are supplied.
	ErrNoTemplatePath = errors.New("need at least one template path")

	// ErrTemplatePatternMatchesNoFiles is returned when a template path is
	// a pattern, but that pattern doesn't match any files.
	ErrTemplatePatternMatchesNoFiles = errors.New("pattern matches no files")
)

// Component is an interface for a UI component that can be rendered to HTML.
type Component interface {
	// Templates returns a list of filepaths (or fs.Glob patterns) to
	// html/template contents that need to be parsed before the component
	// can be rendered.
	Templates(context.Context) []string
}

// ComponentUser is an interface that a Component can optionally implement to
// list the Components that it relies upon. These Components will
// automatically have the appropriate methods called if they implement any of
// the optional interfaces.
type ComponentUser interface {
	// UseComponents returns the Components that this Component relies on.
	UseComponents(context.Context) []Component
}

// FuncMapExtender is an interface that Components and Sites can fulfill to
// add to the map of functions available to templates when rendering.
type FuncMapExtender interface {
	// FuncMap returns an html/template.FuncMap containing all the
	// functions that the Component is adding to the FuncMap.
	FuncMap(context.Context) template.FuncMap
}

// Renderable is an interface for a Component that can be passed to Render or
// Fragment. It should contain all the information needed to render itself
// and the Components it uses to HTML.
type Renderable interface {
	Component

	// Key is a unique key to use when caching this Renderable's parsed
	// templates so they don't need to be re-parsed. A good key is
	// consistent, but unique per Renderable type.
	Key(context.Context) string

	// ExecutedTemplate is the name of the template that needs to actually
	// be executed when rendering.
	ExecutedTemplate(context.Context) string
}

// RenderData is the data that is passed to the executed template.
type RenderData[SiteType Site, PageType Renderable] struct {
	// Site is an instance of the Site type, containing all the
	// configuration and information about a Site.
	Site SiteType

	// Page is the Renderable being rendered.
	Page PageType

	// EmbeddedCSS is the CSS embedded by the Renderable and every
	// Component it uses.
	EmbeddedCSS template.CSS

	// LinkedCSS is the list of stylesheet URLs linked by the Renderable
	// and every Component it uses.
	LinkedCSS []string

	// EmbeddedJS is the JavaScript embedded by the Renderable and every
	// Component it uses.
	EmbeddedJS template.JS

	// LinkedJS is the list of script URLs linked by the Renderable and
	// every Component it uses.
	LinkedJS []string
}

// Render renders the passed Renderable to the Writer. If it can't, an error
// page is written instead. If the Site implements ErrorPager, that will be
// rendered; if not, a simple text message indicating a server error will be
// written.
func Render[SiteType Site, PageType Renderable](ctx context.Context, out io.Writer, site SiteType, page PageType) {
	defer func() {
		// if the Writer can be closed, let's try to close it
		if closer, ok := out.(io.Closer); ok {
			err := closer.Close()
			if err != nil {
				Logger(ctx).ErrorContext(ctx, "error closing writer", "error", err)
			}
		}
	}()

	// render into a buffer so a failure halfway through doesn't leave
	// partial output in front of the error page
	var buf bytes.Buffer
	err := basicRender(ctx, &buf, site, page)
	if err == nil {
		writeOut(ctx, out, &buf)
		return
	}

	Logger(ctx).ErrorContext(ctx, "error rendering page", "page", fmt.Sprintf("%T", page), "error", err)

	if pager, ok := Site(site).(ErrorPager); ok {
		buf.Reset()
		err = basicRender(ctx, &buf, site, pager.ErrorPage(ctx))
		if err != nil {
			// nothing left to fall back to
			Logger(ctx).ErrorContext(ctx, "error rendering error page", "error", err)
			return
		}
		writeOut(ctx, out, &buf)
		return
	}

	_, err = out.Write([]byte("Server error."))
	if err != nil {
		Logger(ctx).ErrorContext(ctx, "error writing server error message", "error", err)
	}
}

func writeOut(ctx context.Context, out io.Writer, buf *bytes.Buffer) {
	_, err := buf.WriteTo(out)
	if err != nil {
		Logger(ctx).ErrorContext(ctx, "error writing rendered output", "error", err)
	}
}

// Fragment renders the passed Renderable and returns the resulting markup.
// Unlike Render, errors are returned to the caller, who decides what to show
// in place of the fragment.
func Fragment[SiteType Site, PageType Renderable](ctx context.Context, site SiteType, component PageType) (template.HTML, error) {
	var buf bytes.Buffer
	err := basicRender(ctx, &buf, site, component)
	if err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil // #nosec G203 -- produced by html/template
}

func basicRender[SiteType Site, PageType Renderable](ctx context.Context, output io.Writer, site SiteType, page PageType) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "sesqui.render", trace.WithAttributes(
		attribute.String("sesqui.renderable", fmt.Sprintf("%T", page)),
		attribute.String("sesqui.key", page.Key(ctx)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tmpl, err := getTemplate(ctx, site, page)
	if err != nil {
		return err
	}

	data := RenderData[SiteType, PageType]{
		Site:        site,
		Page:        page,
		EmbeddedCSS: getComponentCSSEmbeds(ctx, page),
		LinkedCSS:   getComponentCSSLinks(ctx, page),
		EmbeddedJS:  getComponentJSEmbeds(ctx, page),
		LinkedJS:    getComponentJSLinks(ctx, page),
	}

	executed := page.ExecutedTemplate(ctx)
	err = tmpl.ExecuteTemplate(output, executed, data)
	if err != nil {
		return fmt.Errorf("error executing template %q for %T: %w", executed, page, err)
	}
	return nil
}

func getTemplate(ctx context.Context, site Site, page Renderable) (*template.Template, error) {
	key := page.Key(ctx)
	if cache, ok := site.(TemplateCacher); ok {
		cached := cache.GetCachedTemplate(ctx, key)
		if cached != nil {
			return cached, nil
		}
	}
	tmplPaths := getComponentTemplatePaths(ctx, page)
	if len(tmplPaths) < 1 {
		return nil, fmt.Errorf("error rendering %T: %w", page, ErrNoTemplatePath)
	}
	funcMap := getComponentFuncMap(ctx, site, page)
	parsed, err := parseTemplates(site.TemplateDir(ctx), funcMap, tmplPaths...)
	if err != nil {
		return nil, fmt.Errorf("error parsing templates %v for %T: %w", tmplPaths, page, err)
	}
	if cache, ok := site.(TemplateCacher); ok {
		cache.SetCachedTemplate(ctx, key, parsed)
	}
	return parsed, nil
}

func getRecursiveComponents(ctx context.Context, component Component) []Component {
	results := []Component{component}

	if uses, ok := component.(ComponentUser); ok {
		children := uses.UseComponents(ctx)
		for _, child := range children {
			results = append(results, getRecursiveComponents(ctx, child)...)
		}
	}
	return results
}

func getComponentTemplatePaths(ctx context.Context, component Component) []string {
	var results []string
	seen := map[string]struct{}{}
	components := getRecursiveComponents(ctx, component)
	for _, comp := range components {
		paths := comp.Templates(ctx)
		for _, path := range paths {
			if _, ok := seen[path]; !ok {
				results = append(results, path)
				seen[path] = struct{}{}
			}
		}
	}
	return results
}

func getComponentFuncMap(ctx context.Context, site Site, component Component) template.FuncMap {
	results := template.FuncMap{}
	if fm, ok := site.(FuncMapExtender); ok {
		results = mergeFuncMaps(results, fm.FuncMap(ctx))
	}
	components := getRecursiveComponents(ctx, component)
	for _, comp := range components {
		fm, ok := comp.(FuncMapExtender)
		if !ok {
			continue
		}
		results = mergeFuncMaps(results, fm.FuncMap(ctx))
	}
	return results
}

func parseTemplates(fsys fs.FS, funcs template.FuncMap, patterns ...string) (*template.Template, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, pattern := range patterns {
		list, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("error listing files for %q: %w", pattern, err)
		}
		if len(list) < 1 {
			return nil, fmt.Errorf("error parsing %q: %w", pattern, ErrTemplatePatternMatchesNoFiles)
		}
		for _, file := range list {
			if _, ok := seen[file]; ok {
				continue
			}
			seen[file] = struct{}{}
			files = append(files, file)
		}
	}
	if len(files) < 1 {
		return nil, ErrNoTemplatePath
	}
	tmpl := template.New("").Funcs(funcs)
	for _, file := range files {
		sub := tmpl.New(file)
		contents, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("error reading %q: %w", file, err)
		}
		_, err = sub.Parse(string(contents))
		if err != nil {
			return nil, fmt.Errorf("error parsing %q: %w", file, err)
		}
	}
	return tmpl, nil
}

// mergeFuncMaps flattens two FuncMaps into one, with the values in `page`
// overriding the values in `in` if they have the same keys.
func mergeFuncMaps(in template.FuncMap, page template.FuncMap) template.FuncMap {
	res := template.FuncMap{}
	maps.Copy(res, in)
	maps.Copy(res, page)
	return res
}
