package ui

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type summaryCardData struct {
	Label string
	Value string
	Icon  string
}

func homePage(pc pageContext, cards []summaryCardData) Node {
	cardNodes := make([]Node, 0, len(cards))
	for _, c := range cards {
		cardNodes = append(cardNodes, summaryCard(c.Label, c.Value, c.Icon))
	}
	return appPage("Tổng quan", pc,
		Div(Class("summary-grid"), Group(cardNodes)),
		Div(
			Class(cardClass()),
			P(Class(mutedClass()), Text("Các số liệu được tổng hợp từ máy chủ và tự cập nhật sau mỗi thay đổi.")),
		),
	)
}
