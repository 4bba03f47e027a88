package widget

import (
	"fmt"

	"github.com/MosinFAM/comment-widget/internal/models"
)

// PageSize - фиксированный размер страницы
const PageSize = 5

// State - состояние списка: только текущая страница, без кэша других страниц
type State struct {
	CurrentPage int
	PageSize    int
	MaxPage     int
	Total       int
	Comments    []models.Comment

	// Err - последняя ошибка запроса; не фатальна, прежняя страница остаётся видимой
	Err    error
	Loaded bool

	// Version растёт при каждом изменении и позволяет отбросить устаревший снимок
	Version uint64
}

// NewState возвращает состояние первой страницы до первой загрузки
func NewState() State {
	return State{
		CurrentPage: 1,
		PageSize:    PageSize,
		MaxPage:     1,
	}
}

// MaxPage = max(1, ceil(total/size))
func MaxPage(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Apply заменяет комментарии результатом загрузки и пересчитывает MaxPage.
// Если текущая страница вышла за MaxPage, она прижимается к MaxPage и
// clamped = true: такую страницу нужно загрузить заново.
func (s State) Apply(page models.Page) (next State, clamped bool) {
	s.Comments = append([]models.Comment(nil), page.Comments...)
	s.Total = page.Total
	s.MaxPage = MaxPage(page.Total, s.PageSize)
	s.Err = nil
	s.Loaded = true
	s.Version++

	if s.CurrentPage > s.MaxPage {
		s.CurrentPage = s.MaxPage
		clamped = true
	}
	if s.CurrentPage < 1 {
		s.CurrentPage = 1
	}
	return s, clamped
}

// Fail отмечает ошибку, не трогая уже показанные комментарии
func (s State) Fail(err error) State {
	s.Err = err
	s.Version++
	return s
}

// Next переходит на следующую страницу; ok = false, если страница последняя
func (s State) Next() (next State, ok bool) {
	if s.CurrentPage >= s.MaxPage {
		return s, false
	}
	s.CurrentPage++
	s.Version++
	return s, true
}

// Prev переходит на предыдущую страницу; ok = false на первой странице
func (s State) Prev() (next State, ok bool) {
	if s.CurrentPage <= 1 {
		return s, false
	}
	s.CurrentPage--
	s.Version++
	return s, true
}

// PageInfo - индикатор "текущая/всего"
func (s State) PageInfo() string {
	return fmt.Sprintf("%d/%d", s.CurrentPage, s.MaxPage)
}

func (s State) clone() State {
	s.Comments = append([]models.Comment(nil), s.Comments...)
	return s
}
