package ui

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func loginPage(errMsg, next string) Node {
	content := []Node{
		H1(Text("Phòng khám")),
		P(Class(mutedClass()), Text("Đăng nhập để vào trang quản trị.")),
		Form(
			Method("post"),
			Action("/login"),
			Class("login-form"),
			Input(Type("hidden"), Name("next"), Value(next)),
			Label(For("loginName"), Text("Tên đăng nhập")),
			Input(Type("text"), ID("loginName"), Name("loginName"), Class("form-control"), AutoComplete("username"), Required()),
			Label(For("password"), Text("Mật khẩu")),
			Input(Type("password"), ID("password"), Name("password"), Class("form-control"), AutoComplete("current-password"), Required()),
			Button(
				Type("submit"),
				Class(primaryButtonClass()),
				Text("Đăng nhập"),
			),
		),
	}
	if errMsg != "" {
		content = append([]Node{P(Class("flash flash-error"), Text(errMsg))}, content...)
	}

	return HTML(
		Lang("vi"),
		pageHead("Đăng nhập"),
		Body(
			Class("login-body"),
			Main(Class("login-wrap"), Group(content)),
		),
	)
}

func notFoundPage(pc pageContext, path string) Node {
	return appPage("Không tìm thấy trang", pc,
		Div(
			Class(cardClass()),
			P(Text("Đường dẫn "+path+" không tồn tại.")),
			P(A(Href("/dashboard"), Text("Về trang chủ"))),
		),
	)
}

func changePasswordPage(pc pageContext, csrfFieldProvider func() Node, errMsg string, fields map[string][]string) Node {
	return appPage("Đổi mật khẩu", pc,
		formErrorBanner(errMsg),
		fieldErrorList(fields),
		Div(
			Class(cardClass()),
			Form(
				Class("stack-form"),
				Method("post"),
				Action("/dashboard/change-password"),
				csrfFieldProvider(),
				Label(For("currentPassword"), Text("Mật khẩu hiện tại")),
				Input(Type("password"), ID("currentPassword"), Name("currentPassword"), Class("form-control"), AutoComplete("current-password"), Required()),
				Label(For("newPassword"), Text("Mật khẩu mới")),
				Input(Type("password"), ID("newPassword"), Name("newPassword"), Class("form-control"), AutoComplete("new-password"), Required()),
				Label(For("confirmPassword"), Text("Xác nhận mật khẩu mới")),
				Input(Type("password"), ID("confirmPassword"), Name("confirmPassword"), Class("form-control"), AutoComplete("new-password"), Required()),
				Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text("Đổi mật khẩu"))),
			),
		),
	)
}
