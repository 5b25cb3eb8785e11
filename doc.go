// Package sesqui provides the HTML rendering framework behind the
// sesquicentennial site's UI components, built on top of the html/template
// package.
//
// sesqui is organized around Components and Renderables. A Component is some
// piece of HTML that you want included in the output: a navbar, a hero, a
// timeline. A Renderable is a Component that gets rendered itself rather than
// being included in another Component. A full page is a Renderable passed to
// Render; a markup fragment destined for a mount point on an existing page is
// a Renderable passed to Fragment.
//
// Each program should have a Site, which acts as a singleton and provides the
// fs.FS containing the templates that Components use. The Site is available
// at render time as .Site, and the Renderable being rendered as .Page.
//
// Components tend to be structs, with properties for whatever data they want
// to pass to their templates. When a Component relies on another Component, a
// card grid including cards for example, make the child Components a property
// of the parent and return them from a UseComponents method, so their
// templates, function maps, and any CSS or JavaScript they link to or embed
// are all included whenever the parent is rendered.
package sesqui
