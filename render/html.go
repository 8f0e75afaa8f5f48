package render

import (
	"fmt"
	"html"
	"io"

	"github.com/ostraka/corefspan/coref"
	"github.com/ostraka/corefspan/doc"
	"github.com/ostraka/corefspan/span"
)

// HTML renders the document as a self-contained HTML page: one paragraph
// per tree, one <span> per subspan. Clicking a span highlights the whole
// entity, hovering highlights the mention.
type HTML struct {
	W io.Writer
}

var _ Renderer = (*HTML)(nil)

// NewHTML creates an HTML renderer writing to w.
func NewHTML(w io.Writer) *HTML {
	return &HTML{W: w}
}

// Render writes the full page.
func (r *HTML) Render(d *doc.Document, l *coref.Layer) error {
	r.header()

	ids := coref.MentionIDs(l.Entities())
	for _, tree := range d.Trees() {
		events, err := span.Linearize(tree, l.MentionsIn(tree), ids)
		if err != nil {
			return err
		}
		if err := r.Tree(tree, events); err != nil {
			return err
		}
	}

	r.footer()
	return nil
}

// Tree writes one linearized tree as a paragraph.
func (r *HTML) Tree(tree *doc.Tree, events []span.Event) error {
	fmt.Fprintln(r.W, "<p>")

	space := false
	for _, ev := range events {
		switch ev.Kind {
		case span.Open:
			if space {
				fmt.Fprint(r.W, " ")
				space = false
			}
			r.open(ev)
		case span.Visit:
			if space {
				fmt.Fprint(r.W, " ")
			}
			r.visit(ev)
			space = !ev.Node.NoSpaceAfter
		case span.Close:
			fmt.Fprint(r.W, "</span>")
		}
	}

	_, err := fmt.Fprintln(r.W, "\n</p>")
	return err
}

func (r *HTML) open(ev span.Event) {
	classes := fmt.Sprintf("%s %s %s", ev.EntityID, ev.MentionID, ev.EntityType)
	if ev.Subspan.AllEmpty() {
		classes += " empty"
	}
	if ev.Singleton {
		classes += " singleton"
	}
	if ev.CrossingContinuation {
		classes += " crossing"
	}

	title := fmt.Sprintf("eid=%s&#10;type=%s&#10;head=%s",
		ev.Subspan.ID, ev.EntityType, html.EscapeString(ev.Subspan.Mention.Head.Form))
	if ev.CrossingContinuation {
		title += "&#10;crossing"
	}
	if ev.Other != "" {
		title += "&#10;" + html.EscapeString(ev.Other)
	}

	fmt.Fprintf(r.W, `<span class="%s" title="%s">`, classes, title)
}

func (r *HTML) visit(ev span.Event) {
	if ev.IsHead {
		fmt.Fprint(r.W, "<b>")
	}
	if ev.Node.Empty {
		fmt.Fprint(r.W, "<i>")
	}
	fmt.Fprint(r.W, html.EscapeString(ev.Node.Form))
	if ev.Node.Empty {
		fmt.Fprint(r.W, "</i>")
	}
	if ev.IsHead {
		fmt.Fprint(r.W, "</b>")
	}
}

func (r *HTML) header() {
	fmt.Fprintln(r.W, `<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8">`)
	fmt.Fprintln(r.W, `<title>corefspan viewer</title>`)
	fmt.Fprintln(r.W, `<script src="https://code.jquery.com/jquery-3.6.3.min.js"></script>`)
	fmt.Fprintln(r.W, "<style>\n"+
		"span {border: 1px solid black; border-radius: 5px; padding: 2px; display:inline-block;}\n"+
		".empty {color: gray;}\n.singleton {border-style: dotted;}\n"+
		`.crossing:before {content: "!"; display: block; background: #ffd500;}`+"\n"+
		".active {border: 1px solid red;}\n.selected {background: red !important;}\n"+
		".other {background: hsl(0, 0%, 85%);}")
	known := coref.KnownTypes()
	for i, etype := range known {
		fmt.Fprintf(r.W, ".%s {background: hsl(%d, 80%%, 85%%);}\n", etype, i*360/len(known))
	}
	fmt.Fprintln(r.W, "</style>")
	fmt.Fprintln(r.W, "</head>\n<body>")
}

func (r *HTML) footer() {
	fmt.Fprintln(r.W, "<script>\n"+
		`$("span").click(function(e) {`+"\n"+
		` let was_selected = $(this).hasClass("selected");`+"\n"+
		` $("span").removeClass("selected");`+"\n"+
		` if (!was_selected){$("."+$(this).attr("class").split(" ")[0]).addClass("selected");}`+"\n"+
		" e.stopPropagation();\n});\n"+
		`$("span").hover(`+"\n"+
		` function(e) {$("span").removeClass("active"); $("."+$(this).attr("class").split(" ")[1]).addClass("active");},`+"\n"+
		` function(e) {$("span").removeClass("active");}`+"\n"+
		");\n</script>")
	fmt.Fprintln(r.W, "</body></html>")
}
