package ui

import (
	"sort"
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func formPage(pc pageContext, title, action string, csrfFieldProvider func() Node, fields ...Node) Node {
	nodes := []Node{csrfFieldProvider()}
	nodes = append(nodes, fields...)
	return appPage(
		title,
		pc,
		Div(
			Class(cardClass()),
			Form(
				Class("stack-form"),
				Method("post"),
				Action(action),
				Group(nodes),
				Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text("Lưu"))),
			),
		),
	)
}

// fieldErrorList renders per-field validation messages above a form.
func fieldErrorList(fields map[string][]string) Node {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	items := make([]Node, 0, len(keys))
	for _, k := range keys {
		for _, msg := range fields[k] {
			items = append(items, Li(Text(k+": "+msg)))
		}
	}
	return Div(Class("flash flash-error mb-3"), Ul(Class("mb-0"), Group(items)))
}

func formErrorBanner(message string) Node {
	if message == "" {
		return nil
	}
	return Div(Class("flash flash-error mb-3"), Text(message))
}

func textField(label, name, value string, required bool) Node {
	attrs := []Node{Type("text"), Class("form-control"), Name(name), Value(value)}
	if required {
		attrs = append(attrs, Required())
	}
	return Group([]Node{
		Label(For(name), Text(label)),
		Input(append(attrs, ID(name))...),
	})
}

func passwordField(label, name string, required bool) Node {
	attrs := []Node{Type("password"), Class("form-control"), Name(name), AutoComplete("new-password")}
	if required {
		attrs = append(attrs, Required())
	}
	return Group([]Node{
		Label(For(name), Text(label)),
		Input(append(attrs, ID(name))...),
	})
}

func numberField(label, name, value, step string, required bool) Node {
	attrs := []Node{Type("number"), Class("form-control"), Name(name), Value(value)}
	if step != "" {
		attrs = append(attrs, Attr("step", step))
	}
	if required {
		attrs = append(attrs, Required())
	}
	return Group([]Node{
		Label(For(name), Text(label)),
		Input(append(attrs, ID(name))...),
	})
}

func textareaField(label, name, value string) Node {
	return Group([]Node{
		Label(For(name), Text(label)),
		Textarea(ID(name), Name(name), Class("form-control"), Attr("rows", "3"), Text(value)),
	})
}

func checkboxField(label, name string, checked bool) Node {
	attrs := []Node{Type("checkbox"), Name(name), ID(name), Value("true")}
	if checked {
		attrs = append(attrs, Checked())
	}
	return Div(Class("form-checkbox"),
		Label(Input(attrs...), Text(" "+label)),
	)
}

type selectOption struct {
	Value string
	Label string
}

func selectField(label, name, selected string, options []selectOption, required bool) Node {
	opts := make([]Node, 0, len(options)+1)
	if !required {
		opts = append(opts, Option(Value(""), Text("--")))
	}
	for _, o := range options {
		if o.Value == selected {
			opts = append(opts, Option(Value(o.Value), Selected(), Text(o.Label)))
		} else {
			opts = append(opts, Option(Value(o.Value), Text(o.Label)))
		}
	}
	attrs := []Node{ID(name), Name(name), Class("form-select")}
	if required {
		attrs = append(attrs, Required())
	}
	return Group([]Node{
		Label(For(name), Text(label)),
		Select(append(attrs, Group(opts))...),
	})
}

func multiSelectField(label, name string, selected map[int64]bool, options []selectOption) Node {
	opts := make([]Node, 0, len(options))
	for _, o := range options {
		id, _ := strconv.ParseInt(o.Value, 10, 64)
		if selected[id] {
			opts = append(opts, Option(Value(o.Value), Selected(), Text(o.Label)))
		} else {
			opts = append(opts, Option(Value(o.Value), Text(o.Label)))
		}
	}
	return Group([]Node{
		Label(For(name), Text(label)),
		Select(ID(name), Name(name), Class("form-select"), Multiple(), Attr("size", "6"), Group(opts)),
	})
}
