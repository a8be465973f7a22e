package ui

import (
	"strconv"

	"clinic-admin/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func medicinesListPage(pc pageContext, medicines []domain.Medicine, units []domain.Unit, query medicineQuery, csrfField func() Node) Node {
	canEdit := pc.Principal.Permissions.Has(domain.PermEditMedicine)
	canDelete := pc.Principal.Permissions.Has(domain.PermDelMedicine)
	canAdd := pc.Principal.Permissions.Has(domain.PermAddMedicine)

	tableRows := make([]Node, 0, len(medicines))
	for _, m := range medicines {
		idStr := strconv.FormatInt(m.ID, 10)
		var actionItems []Node
		if canEdit {
			actionItems = append(actionItems, actionMenuLink("/dashboard/medicines/"+idStr+"/edit", "Sửa"))
		}
		if canDelete {
			actionItems = append(actionItems, actionMenuPost("/dashboard/medicines/"+idStr+"/delete", "Xóa", csrfField, true))
		}
		actions := Node(nil)
		if len(actionItems) > 0 {
			actions = actionMenu("Actions", actionItems...)
		}

		stockCell := Td(Text(strconv.Itoa(m.Stock)))
		if m.Stock <= lowStockThreshold {
			stockCell = Td(Text(strconv.Itoa(m.Stock)), Text(" "), statusLabel("Sắp hết", "danger"))
		}

		tableRows = append(tableRows, Tr(
			Td(Text(m.Name)),
			Td(Text(m.Unit.Name)),
			Td(Text(m.Usage.Description)),
			Td(Text(formatVND(m.Price))),
			stockCell,
			Td(actions),
		))
	}

	tableNode := Node(emptyStateCard("Không có thuốc nào khớp với bộ lọc.", "", ""))
	if len(tableRows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")), Table(Class("data-table"),
			THead(Tr(Th(Text("Tên thuốc")), Th(Text("Đơn vị")), Th(Text("Cách dùng")), Th(Text("Đơn giá")), Th(Text("Tồn kho")), Th())),
			TBody(Group(tableRows)),
		))
	}

	toolbar := pageToolbar("Kho thuốc của phòng khám, kèm đơn giá và tồn kho.", "", "")
	if canAdd {
		toolbar = pageToolbar("Kho thuốc của phòng khám, kèm đơn giá và tồn kho.", "/dashboard/medicines/new", "Thêm thuốc")
	}

	return appPage("Quản lý thuốc", pc,
		toolbar,
		medicineFilterBar(units, query),
		tableNode,
	)
}

// medicineFilterBar is a GET form so every filter combination has a URL.
func medicineFilterBar(units []domain.Unit, query medicineQuery) Node {
	unitOptions := []Node{Option(Value(""), Text("Tất cả đơn vị"), If(query.UnitID == 0, Selected()))}
	for _, u := range units {
		value := strconv.FormatInt(u.ID, 10)
		unitOptions = append(unitOptions, Option(Value(value), Text(u.Name), If(u.ID == query.UnitID, Selected())))
	}
	sortOptions := []Node{
		Option(Value(""), Text("Thứ tự mặc định"), If(query.Sort == "", Selected())),
		Option(Value("name"), Text("Theo tên"), If(query.Sort == "name", Selected())),
		Option(Value("price"), Text("Theo đơn giá"), If(query.Sort == "price", Selected())),
		Option(Value("stock"), Text("Theo tồn kho"), If(query.Sort == "stock", Selected())),
	}

	return Div(
		Class(cardClass("filter-bar")),
		Form(
			Method("get"),
			Action("/dashboard/medicines"),
			Class("filter-form"),
			Input(Type("search"), Name("q"), Value(query.Search), Placeholder("Tìm theo tên thuốc")),
			Select(Name("unit"), Group(unitOptions)),
			Select(Name("sort"), Group(sortOptions)),
			Label(Class("filter-check"),
				Input(Type("checkbox"), Name("low"), Value("1"), If(query.LowStock, Checked())),
				Text(" Chỉ thuốc sắp hết"),
			),
			Button(Type("submit"), Class(secondaryButtonClass()), Text("Lọc")),
		),
	)
}

type medicineFormData struct {
	Title       string
	Action      string
	Medicine    domain.Medicine
	Units       []domain.Unit
	Usages      []domain.Usage
	Error       string
	FieldErrors map[string][]string
}

func medicineFormPage(pc pageContext, d medicineFormData, csrfField func() Node) Node {
	unitOptions := make([]selectOption, 0, len(d.Units))
	for _, u := range d.Units {
		unitOptions = append(unitOptions, selectOption{Value: strconv.FormatInt(u.ID, 10), Label: u.Name})
	}
	usageOptions := make([]selectOption, 0, len(d.Usages))
	for _, u := range d.Usages {
		usageOptions = append(usageOptions, selectOption{Value: strconv.FormatInt(u.ID, 10), Label: u.Description})
	}

	unitValue := ""
	if d.Medicine.Unit.ID > 0 {
		unitValue = strconv.FormatInt(d.Medicine.Unit.ID, 10)
	}
	usageValue := ""
	if d.Medicine.Usage.ID > 0 {
		usageValue = strconv.FormatInt(d.Medicine.Usage.ID, 10)
	}
	price := ""
	if d.Medicine.Price > 0 {
		price = strconv.FormatFloat(d.Medicine.Price, 'f', -1, 64)
	}
	stock := ""
	if d.Medicine.Stock > 0 || d.Medicine.ID > 0 {
		stock = strconv.Itoa(d.Medicine.Stock)
	}

	return appPage(d.Title, pc,
		formErrorBanner(d.Error),
		fieldErrorList(d.FieldErrors),
		Div(
			Class(cardClass()),
			Form(
				Class("stack-form"),
				Method("post"),
				Action(d.Action),
				csrfField(),
				textField("Tên thuốc", "name", d.Medicine.Name, true),
				selectField("Đơn vị tính", "unit", unitValue, unitOptions, true),
				selectField("Cách dùng mặc định", "usage", usageValue, usageOptions, true),
				numberField("Đơn giá (VND)", "price", price, "100", true),
				numberField("Tồn kho", "stock", stock, "1", true),
				Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text("Lưu"))),
			),
		),
	)
}
