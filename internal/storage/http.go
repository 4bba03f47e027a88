package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MosinFAM/comment-widget/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	opGet    = "get"
	opAdd    = "add"
	opDelete = "delete"
)

// envelope - общий формат ответа Store API
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// HTTPStorage - клиент удалённого Store API
type HTTPStorage struct {
	BaseURL string
	Client  *http.Client
	logger  *zap.Logger
}

// NewHTTPStorage создаёт клиент Store API с базовым адресом baseURL
func NewHTTPStorage(baseURL string, client *http.Client, logger *zap.Logger) *HTTPStorage {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPStorage{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
		logger:  logger.Named("http"),
	}
}

// GetComments запрашивает страницу комментариев
func (s *HTTPStorage) GetComments(ctx context.Context, page, size int) (models.Page, error) {
	if err := validPage(page, size); err != nil {
		return models.Page{}, err
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	env, err := s.do(ctx, opGet, http.MethodGet, "/comment/get", q, nil)
	if err != nil {
		return models.Page{}, err
	}

	var result models.Page
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return models.Page{}, &NetworkError{Op: opGet, Err: fmt.Errorf("decode page: %w", err)}
	}
	if result.Comments == nil {
		result.Comments = []models.Comment{}
	}
	return result, nil
}

// AddComment отправляет новый комментарий
func (s *HTTPStorage) AddComment(ctx context.Context, name, content string) (*models.Comment, error) {
	body, err := json.Marshal(struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}{name, content})
	if err != nil {
		return nil, fmt.Errorf("encode comment: %w", err)
	}

	env, err := s.do(ctx, opAdd, http.MethodPost, "/comment/add", nil, body)
	if err != nil {
		return nil, err
	}

	// Ответ интересен только как признак успеха; созданный комментарий разбираем, если он есть
	comment := &models.Comment{Name: name, Content: content}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, comment); err != nil {
			s.logger.Debug("ignoring undecodable add response", zap.Error(err))
		}
	}
	return comment, nil
}

// DeleteComment удаляет комментарий по ID
func (s *HTTPStorage) DeleteComment(ctx context.Context, id int64) error {
	q := url.Values{}
	q.Set("id", strconv.FormatInt(id, 10))

	_, err := s.do(ctx, opDelete, http.MethodPost, "/comment/delete", q, nil)
	return err
}

func (s *HTTPStorage) do(ctx context.Context, op, method, path string, query url.Values, body []byte) (*envelope, error) {
	target := s.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := s.logger.With(zap.String("op", op), zap.String("request_id", requestID))
	logger.Debug("sending request", zap.String("method", method), zap.String("url", target))

	resp, err := s.Client.Do(req)
	if err != nil {
		logger.Warn("request failed", zap.Error(err))
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		nerr := &NetworkError{Op: op, Status: resp.StatusCode, Msg: env.Msg}
		if resp.StatusCode == http.StatusNotFound && op == opDelete {
			nerr.Err = ErrNotFound
		}
		logger.Warn("unexpected status", zap.Int("status", resp.StatusCode), zap.String("msg", env.Msg))
		return nil, nerr
	}
	if decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		// Тело ответа на add/delete не используется
		if op != opGet {
			logger.Debug("ignoring undecodable response", zap.Error(decodeErr))
			return &envelope{}, nil
		}
		logger.Warn("cannot decode response", zap.Error(decodeErr))
		return nil, &NetworkError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}

	logger.Debug("request done", zap.Int("status", resp.StatusCode))
	return &env, nil
}
