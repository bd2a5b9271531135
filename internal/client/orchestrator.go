// Package client はアップロードと診断を順に呼び出すクライアント側のオーケストレーターです。
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"

	"plant_backend/internal/api"
)

// 失敗時にレスポンスから理由が取れない場合の表示文言。
const (
	MessageUploadFailed  = "Failed to upload file."
	MessageAnalyzeFailed = "Failed to get analysis from the server."
)

var (
	// ErrBusy は診断の実行中に次の診断が要求された場合に返されます。
	ErrBusy = errors.New("a diagnosis is already in progress")
	// ErrNoFile はファイル名または中身が空の場合に返されます。
	ErrNoFile = errors.New("no file selected")
)

// StepError はサーバーが返した失敗を表示用メッセージ付きで表します。
type StepError struct {
	Step    string // upload または analyze
	Status  int
	Message string
}

func (e *StepError) Error() string { return e.Message }

// Report は1回の診断の結果です。
type Report struct {
	Object   api.StoredObjectResponse
	Analysis api.AnalyzeResponse
	Elapsed  time.Duration
}

// Orchestrator はアップロードから診断までの流れを実行します。
// 同時に実行できる診断は1件だけです。
type Orchestrator struct {
	http *resty.Client
	busy atomic.Bool
}

// New はbaseURLのサーバーに対するOrchestratorを生成します。
func New(baseURL string, timeout time.Duration) *Orchestrator {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Orchestrator{http: c}
}

// Diagnose はdataをアップロードし、返されたURLで診断を要求します。
// 最初に失敗したステップのエラーを返します。
func (o *Orchestrator) Diagnose(ctx context.Context, filename string, data []byte) (*Report, error) {
	if filename == "" || len(data) == 0 {
		return nil, ErrNoFile
	}
	if !o.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer o.busy.Store(false)

	start := time.Now()
	obj, err := o.upload(ctx, filename, data)
	if err != nil {
		return nil, err
	}
	res, err := o.analyze(ctx, obj.URL)
	if err != nil {
		return nil, err
	}
	return &Report{Object: *obj, Analysis: *res, Elapsed: time.Since(start)}, nil
}

func (o *Orchestrator) upload(ctx context.Context, filename string, data []byte) (*api.StoredObjectResponse, error) {
	var obj api.StoredObjectResponse
	var apiErr api.ErrorResponse
	resp, err := o.http.R().
		SetContext(ctx).
		SetQueryParam("filename", filename).
		SetHeader("Content-Type", mimetype.Detect(data).String()).
		SetBody(data).
		SetResult(&obj).
		SetError(&apiErr).
		Post("/api/upload")
	if err != nil {
		return nil, fmt.Errorf("upload request: %w", err)
	}
	if resp.IsError() || resp.StatusCode() != http.StatusOK {
		msg := apiErr.Error
		if msg == "" {
			msg = MessageUploadFailed
		}
		return nil, &StepError{Step: "upload", Status: resp.StatusCode(), Message: msg}
	}
	return &obj, nil
}

func (o *Orchestrator) analyze(ctx context.Context, imageURL string) (*api.AnalyzeResponse, error) {
	var res api.AnalyzeResponse
	var apiErr api.ErrorResponse
	resp, err := o.http.R().
		SetContext(ctx).
		SetBody(api.AnalyzeRequest{ImageURL: imageURL}).
		SetResult(&res).
		SetError(&apiErr).
		Post("/api/analyze")
	if err != nil {
		return nil, fmt.Errorf("analyze request: %w", err)
	}
	if resp.IsError() || resp.StatusCode() != http.StatusOK {
		msg := apiErr.Details
		if msg == "" {
			msg = MessageAnalyzeFailed
		}
		return nil, &StepError{Step: "analyze", Status: resp.StatusCode(), Message: msg}
	}
	return &res, nil
}
