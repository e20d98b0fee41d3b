package service

import "html/template"

type MarkdownRenderer interface {
	Render(src string) template.HTML
}
