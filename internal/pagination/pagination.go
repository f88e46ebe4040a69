// Package pagination 将有序结果集切分为固定大小的页。
//
// 页码非法或缺失时回退到第 1 页；超出范围时回退到最后一页；
// 空结果集视为 1 页（第 1 页为空）。
package pagination

import (
	"strconv"
	"strings"
)

// PerPage 列表页固定页大小
const PerPage = 10

// Page 当前页元数据
type Page struct {
	Number   int
	NumPages int
	Total    int64
	PerPage  int
}

// New 解析原始页码并按 total 计算页元数据
func New(raw string, total int64, perPage int) Page {
	if perPage < 1 {
		perPage = PerPage
	}
	if total < 0 {
		total = 0
	}
	numPages := int((total + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}

	number, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case raw == "last":
		number = numPages
	case err != nil || number < 1:
		number = 1
	case number > numPages:
		number = numPages
	}
	return Page{Number: number, NumPages: numPages, Total: total, PerPage: perPage}
}

func (p Page) Offset() int { return (p.Number - 1) * p.PerPage }

func (p Page) Limit() int { return p.PerPage }

func (p Page) HasNext() bool { return p.Number < p.NumPages }

func (p Page) HasPrevious() bool { return p.Number > 1 }

func (p Page) HasOtherPages() bool { return p.NumPages > 1 }

func (p Page) Next() int { return p.Number + 1 }

func (p Page) Previous() int { return p.Number - 1 }

// Range 返回 1..NumPages，供模板渲染页码
func (p Page) Range() []int {
	res := make([]int, p.NumPages)
	for i := range res {
		res[i] = i + 1
	}
	return res
}
