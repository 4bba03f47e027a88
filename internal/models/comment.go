package models

// Модель комментария; ID присваивает хранилище
type Comment struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Page - одна страница комментариев и общее количество на сервере
type Page struct {
	Comments []Comment `json:"comments"`
	Total    int       `json:"total"`
}
