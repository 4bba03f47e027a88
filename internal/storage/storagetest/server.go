// Package storagetest - поддельный Comment Store API для тестов HTTP-клиента
package storagetest

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/MosinFAM/comment-widget/internal/storage"

	"github.com/gin-gonic/gin"
)

// Server обслуживает /comment/get, /comment/add и /comment/delete поверх MemoryStorage
type Server struct {
	*httptest.Server
	Store *storage.MemoryStorage

	gets    atomic.Int64
	adds    atomic.Int64
	deletes atomic.Int64

	mu        sync.Mutex
	failWith  int
	deletedID []int64
}

type response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

// NewServer запускает сервер; по завершении нужно вызвать Close
func NewServer() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{Store: storage.NewMemoryStorage(nil)}

	r := gin.New()
	r.Use(s.count, s.failures)
	r.GET("/comment/get", s.get)
	r.POST("/comment/add", s.add)
	r.POST("/comment/delete", s.delete)

	s.Server = httptest.NewServer(r)
	return s
}

// FailWith - все следующие запросы отвечают status; 0 возвращает обычную работу.
// Отклонённые запросы всё равно учитываются в Gets, Adds и Deletes
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	s.failWith = status
	s.mu.Unlock()
}

func (s *Server) Gets() int64    { return s.gets.Load() }
func (s *Server) Adds() int64    { return s.adds.Load() }
func (s *Server) Deletes() int64 { return s.deletes.Load() }

// DeletedIDs - ID запросов на удаление в порядке поступления
func (s *Server) DeletedIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.deletedID...)
}

func (s *Server) count(c *gin.Context) {
	switch c.FullPath() {
	case "/comment/get":
		s.gets.Add(1)
	case "/comment/add":
		s.adds.Add(1)
	case "/comment/delete":
		s.deletes.Add(1)
	}
	c.Next()
}

func (s *Server) failures(c *gin.Context) {
	s.mu.Lock()
	status := s.failWith
	s.mu.Unlock()

	if status != 0 {
		send(c, status, "injected failure", nil)
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) get(c *gin.Context) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		send(c, http.StatusBadRequest, "invalid page", nil)
		return
	}
	size, err := strconv.Atoi(c.Query("size"))
	if err != nil || size == 0 || size < storage.AllComments {
		send(c, http.StatusBadRequest, "invalid size", nil)
		return
	}

	result, err := s.Store.GetComments(c.Request.Context(), page, size)
	if err != nil {
		send(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	send(c, http.StatusOK, "ok", result)
}

func (s *Server) add(c *gin.Context) {
	var body struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		send(c, http.StatusBadRequest, "invalid body", nil)
		return
	}

	comment, err := s.Store.AddComment(c.Request.Context(), body.Name, body.Content)
	if err != nil {
		send(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	send(c, http.StatusOK, "ok", comment)
}

func (s *Server) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		send(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	s.mu.Lock()
	s.deletedID = append(s.deletedID, id)
	s.mu.Unlock()

	err = s.Store.DeleteComment(c.Request.Context(), id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		send(c, http.StatusNotFound, "comment not found", nil)
	case err != nil:
		send(c, http.StatusInternalServerError, err.Error(), nil)
	default:
		send(c, http.StatusOK, "ok", nil)
	}
}

func send(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, response{Code: status, Msg: msg, Data: data})
}
