package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"clinic-admin/internal/domain"
	"clinic-admin/internal/nav"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

// pageContext carries everything the shared chrome needs: who is signed in,
// which menu entry is active, the breadcrumb trail, and an optional flash.
type pageContext struct {
	Principal domain.Principal
	ActiveKey string
	Path      string
	Flash     *flashMessage
	csrf      func() Node
}

func appPage(title string, pc pageContext, body ...Node) Node {
	sidebar := navTreeNodes(nav.Filter(nav.Tree(), pc.Principal.Permissions), pc.ActiveKey)
	crumbs := breadcrumbNodes(nav.Breadcrumb(pc.Path))

	content := []Node{}
	if pc.Flash != nil {
		content = append(content, flashToast(*pc.Flash))
	}
	content = append(content, body...)

	return HTML(
		Lang("vi"),
		Attr("data-color-mode", "auto"),
		Attr("data-light-theme", "light"),
		Attr("data-dark-theme", "dark"),
		pageHead(title),
		Body(
			Main(Class("app-shell"),
				Aside(
					Class("app-sidebar"),
					Div(
						Class("brand"),
						Strong(Text("Phòng khám")),
						P(Class("color-fg-muted text-small mb-0"), Text("Quản trị phòng khám tư nhân")),
					),
					Nav(Class("app-nav"), Group(sidebar)),
				),
				Section(
					Class("app-main"),
					Div(
						Class("topbar"),
						Div(
							Nav(Class("breadcrumb"), Attr("aria-label", "Breadcrumb"), Group(crumbs)),
							H1(Class("page-title"), Text(title)),
						),
						Div(
							P(Class("color-fg-muted text-small mb-2"), Text("Đăng nhập: "+pc.Principal.Label())),
							Div(Class("d-flex gap-2"),
								A(Href(pc.Path), Class(secondaryButtonClass()+" btn-sm"), Text("Tải lại")),
								A(Href("/dashboard/change-password"), Class(secondaryButtonClass()+" btn-sm"), Text("Đổi mật khẩu")),
								Form(
									Method("post"),
									Action("/logout"),
									Button(Type("submit"), Class("btn btn-sm"), Text("Đăng xuất")),
								),
							),
						),
					),
					Div(Class("content"), Group(content)),
				),
			),
			Script(Raw("if (window.lucide) { window.lucide.createIcons(); } document.addEventListener('click', function(e){ var t=e.target; if(!(t instanceof Element)){return;} document.querySelectorAll('details.dropdown[open]').forEach(function(d){ if(!d.contains(t)){ d.removeAttribute('open'); }}); });")),
		),
	)
}

func pageHead(title string) Node {
	return Head(
		Meta(Charset("utf-8")),
		Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
		TitleEl(Text(title+" | Phòng khám")),
		Link(Rel("icon"), Href("data:,")),
		Link(Rel("preconnect"), Href("https://fonts.googleapis.com")),
		Link(Rel("preconnect"), Href("https://fonts.gstatic.com"), Attr("crossorigin", "")),
		Link(Rel("stylesheet"), Href("https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap")),
		Link(Rel("stylesheet"), Href("https://cdn.jsdelivr.net/npm/@primer/css@22.1.0/dist/primer.min.css")),
		Link(Rel("stylesheet"), Href("/static/app.css")),
		Script(Src("https://unpkg.com/lucide@latest/dist/umd/lucide.min.js")),
		Script(
			Type("module"),
			Src("https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"),
		),
	)
}

// navTreeNodes renders the filtered menu. Leaves become links; groups become
// headings over their children.
func navTreeNodes(tree []nav.Node, active string) []Node {
	out := make([]Node, 0, len(tree))
	for _, item := range tree {
		if len(item.Children) > 0 {
			out = append(out,
				P(Class("app-nav-group-title"),
					I(Class("nav-icon"), Attr("data-lucide", item.Icon), Attr("aria-hidden", "true")),
					Span(Text(item.Label)),
				),
				Div(Class("app-nav-group"), Group(navTreeNodes(item.Children, active))),
			)
			continue
		}
		className := "app-nav-link Link--secondary d-flex flex-items-center"
		if item.Key == active {
			className += " active"
		}
		out = append(out, A(
			Href(item.Path),
			Class(className),
			I(Class("nav-icon"), Attr("data-lucide", item.Icon), Attr("aria-hidden", "true")),
			Span(Text(item.Label)),
		))
	}
	return out
}

func breadcrumbNodes(crumbs []nav.Crumb) []Node {
	out := make([]Node, 0, len(crumbs)*2)
	for i, c := range crumbs {
		if i > 0 {
			out = append(out, Span(Class("breadcrumb-sep"), Text("/")))
		}
		if i == len(crumbs)-1 {
			out = append(out, Span(Class("breadcrumb-current"), Text(c.Label)))
		} else {
			out = append(out, A(Href(c.Path), Class("breadcrumb-link"), Text(c.Label)))
		}
	}
	return out
}

func flashToast(f flashMessage) Node {
	className := "flash mb-3"
	switch f.Tone {
	case flashSuccess:
		className = "flash flash-success mb-3"
	case flashError:
		className = "flash flash-error mb-3"
	}
	return Div(Class(className), Text(f.Text))
}

func errorPage(title, message string) Node {
	return HTML(
		Lang("vi"),
		Attr("data-color-mode", "auto"),
		Attr("data-light-theme", "light"),
		Attr("data-dark-theme", "dark"),
		pageHead(title),
		Body(
			Main(
				Class("layout"),
				H1(Class("page-title"), Text(title)),
				P(Text(message)),
				P(A(Href("/dashboard"), Text("Về trang chủ"))),
			),
			Script(Raw("if (window.lucide) { window.lucide.createIcons(); }")),
		),
	)
}

func formatDate(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("02/01/2006")
}

func formatDateTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("02/01/2006 15:04")
}

// formatVND renders an amount with thousands separators, e.g. "1.250.000 ₫".
func formatVND(amount float64) string {
	whole := int64(amount)
	s := strconv.FormatInt(whole, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ".")
	if neg {
		out = "-" + out
	}
	return out + " ₫"
}

func containsExpr(value string) string {
	lower := strings.ToLower(value)
	return "$q === '' || " + strconv.Quote(lower) + ".includes($q.toLowerCase())"
}

func cardClass(extra ...string) string {
	parts := []string{"Box", "p-3", "mb-3", "card"}
	parts = append(parts, extra...)
	return strings.Join(parts, " ")
}

func mutedClass() string {
	return "color-fg-muted text-small"
}

func primaryButtonClass() string {
	return "btn btn-primary"
}

func secondaryButtonClass() string {
	return "btn"
}

func quickFilterCard(placeholder string, extraControls ...Node) Node {
	controls := []Node{
		Div(
			Class("d-flex flex-items-center gap-2 flex-1"),
			Label(Class("sr-only"), Text("Quick filter")),
			Input(Type("search"), Class("form-control"), Placeholder(placeholder), data.Bind("q"), AutoComplete("off")),
		),
	}
	controls = append(controls, extraControls...)
	return Div(
		Class(cardClass("toolbar")),
		data.Signals(map[string]any{"q": ""}),
		Div(Class("d-flex flex-wrap flex-items-center gap-2"), Group(controls)),
	)
}

func pageToolbar(description, newHref, newLabel string) Node {
	cta := Node(nil)
	if newHref != "" {
		cta = A(Href(newHref), Class(primaryButtonClass()), Text(newLabel))
	}
	return Div(
		Class(cardClass("toolbar")),
		Div(
			Class("d-flex flex-justify-between flex-items-center flex-wrap gap-2"),
			P(Class("color-fg-muted text-small mb-0"), Text(description)),
			cta,
		),
	)
}

func emptyStateCard(message, ctaLabel, ctaHref string) Node {
	cta := Node(nil)
	if ctaLabel != "" && ctaHref != "" {
		cta = A(Href(ctaHref), Class(primaryButtonClass()), Text(ctaLabel))
	}
	return Div(
		Class(cardClass("blankslate")),
		P(Class("color-fg-muted mb-2"), Text(message)),
		cta,
	)
}

func statusLabel(text, tone string) Node {
	className := "Label"
	if tone != "" {
		className += " Label--" + tone
	}
	return Span(Class(className), Text(text))
}

func actionMenu(label string, items ...Node) Node {
	summaryClass := "btn btn-sm"
	summaryContent := Node(Text(label))
	if label == "More" || label == "Actions" {
		summaryClass = "btn btn-sm btn-icon"
		summaryContent = Group([]Node{
			I(Class("btn-icon-glyph"), Attr("data-lucide", "ellipsis"), Attr("aria-hidden", "true")),
			Span(Class("sr-only"), Text(label)),
		})
	}

	return Details(
		Class("dropdown details-reset details-overlay d-inline-block"),
		Summary(Class(summaryClass), Title(label), Attr("aria-label", label), summaryContent),
		Div(
			Class("dropdown-menu dropdown-menu-sw"),
			Group(items),
		),
	)
}

func actionMenuLink(href, label string) Node {
	icon := actionIconForLabel(label)
	return A(
		Href(href),
		Class("dropdown-item"),
		I(Class("dropdown-item-icon"), Attr("data-lucide", icon), Attr("aria-hidden", "true")),
		Span(Text(label)),
	)
}

func actionMenuPost(action, label string, csrfField func() Node, danger bool) Node {
	btnClass := "dropdown-item"
	if danger {
		btnClass += " dropdown-item-danger color-fg-danger"
	}
	icon := actionIconForLabel(label)
	button := Form(
		Method("post"),
		Action(action),
		csrfField(),
		Button(
			Type("submit"),
			Class(btnClass),
			I(Class("dropdown-item-icon"), Attr("data-lucide", icon), Attr("aria-hidden", "true")),
			Span(Text(label)),
		),
	)
	if danger {
		return Group([]Node{
			Div(Class("dropdown-divider")),
			button,
		})
	}
	return button
}

func actionIconForLabel(label string) string {
	lower := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.Contains(lower, "xóa") || strings.Contains(lower, "delete"):
		return "trash-2"
	case strings.Contains(lower, "sửa") || strings.Contains(lower, "edit"):
		return "pencil"
	case strings.Contains(lower, "in") || strings.Contains(lower, "print"):
		return "printer"
	case strings.Contains(lower, "thêm") || strings.Contains(lower, "add"):
		return "plus"
	default:
		return "circle"
	}
}

func summaryCard(label, value, icon string) Node {
	return Div(
		Class(cardClass("summary-card")),
		I(Class("summary-icon"), Attr("data-lucide", icon), Attr("aria-hidden", "true")),
		Div(
			P(Class(mutedClass()), Text(label)),
			Strong(Class("summary-value"), Text(value)),
		),
	)
}

func countText(n int, singular string) string {
	return fmt.Sprintf("%d %s", n, singular)
}
