package timeline

import (
	"html/template"
	"strconv"

	"impractical.co/sesqui/dom"
)

// Class names and selectors of the generated markup the view binds to.
const (
	classTabActive     = "timeline-tab-active"
	classSectionActive = "timeline-section-active"

	selectorRoot        = ".timeline"
	selectorTabs        = ".timeline-tab"
	selectorSections    = ".timeline-section"
	selectorInput       = ".timeline-search-input"
	selectorClear       = ".timeline-search-clear"
	selectorResults     = ".timeline-search-results"
	selectorResultCount = ".timeline-results-count"
	selectorResultsTab  = `.timeline-tab[data-decade="` + ResultsKey + `"]`
	selectorResultsPane = `.timeline-section[data-decade="` + ResultsKey + `"]`
)

var _ View = &domView{}

// domView binds a Controller to timeline markup in a dom.Document. Tabs and
// panels are found by their data-decade key.
type domView struct {
	doc  *dom.Document
	root *dom.Element
}

func newDOMView(doc *dom.Document, root *dom.Element) *domView {
	return &domView{doc: doc, root: root}
}

func (v *domView) Do(fn func()) {
	v.doc.Run(fn)
}

func (v *domView) Attached() bool {
	return v.root.Connected()
}

func (v *domView) Activate(key string) {
	for _, tab := range v.root.QueryAll(selectorTabs) {
		active := tab.Data("decade") == key
		tab.ToggleClass(classTabActive, active)
		tab.SetAttr("aria-selected", strconv.FormatBool(active))
	}
	for _, section := range v.root.QueryAll(selectorSections) {
		section.ToggleClass(classSectionActive, section.Data("decade") == key)
	}
}

func (v *domView) RevealResults(markup template.HTML, count int) {
	if results := v.root.Query(selectorResults); results != nil {
		if err := results.SetInnerHTML(string(markup)); err != nil {
			return
		}
	}
	if tab := v.root.Query(selectorResultsTab); tab != nil {
		if counter := tab.Query(selectorResultCount); counter != nil {
			_ = counter.SetInnerHTML(strconv.Itoa(count))
		}
		tab.SetHidden(false)
	}
	if pane := v.root.Query(selectorResultsPane); pane != nil {
		pane.SetHidden(false)
	}
}

func (v *domView) HideResults() {
	if tab := v.root.Query(selectorResultsTab); tab != nil {
		tab.SetHidden(true)
		tab.RemoveClass(classTabActive)
		tab.SetAttr("aria-selected", "false")
	}
	if pane := v.root.Query(selectorResultsPane); pane != nil {
		pane.SetHidden(true)
		pane.RemoveClass(classSectionActive)
	}
}

func (v *domView) SetClearVisible(visible bool) {
	if btn := v.root.Query(selectorClear); btn != nil {
		btn.SetHidden(!visible)
	}
}

func (v *domView) SetQuery(text string) {
	if input := v.root.Query(selectorInput); input != nil {
		input.SetValue(text)
	}
}

func (v *domView) FocusQuery() {
	if input := v.root.Query(selectorInput); input != nil {
		input.Focus()
	}
}
