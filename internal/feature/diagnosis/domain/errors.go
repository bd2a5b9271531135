package domain

import (
	"errors"
	"fmt"
)

// Kind は診断処理のエラー種別です。ハンドラーはKindでHTTPステータスを決定します。
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindFetch             Kind = "fetch"
	KindInference         Kind = "inference"
	KindMalformedResponse Kind = "malformed_response"
	KindUnknown           Kind = "unknown"
)

// 利用者に表示するメッセージ。
const (
	MessageImageURLRequired   = "Image URL is required."
	MessageFetchFailed        = "Failed to fetch image from URL: %s"
	MessageInferenceFailed    = "Failed to analyze image."
	MessageInvalidPredictions = "Received invalid prediction data from model."
	MessageUnknown            = "An internal server error occurred."
)

// Error は種別付きのドメインエラーです。
// Messageは利用者向けの文言、Detailsは推論APIが返した本文など補足情報です。
type Error struct {
	Kind    Kind
	Message string
	Details string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError は種別とメッセージからエラーを生成します。
func NewError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// NewFetchError は画像の再取得に失敗したことを表すエラーを生成します。
func NewFetchError(url string, cause error) *Error {
	return NewError(KindFetch, fmt.Sprintf(MessageFetchFailed, url), cause)
}

// NewInferenceError は推論APIがエラーを返したことを表すエラーを生成します。
func NewInferenceError(details string, cause error) *Error {
	return &Error{Kind: KindInference, Message: MessageInferenceFailed, Details: details, Cause: cause}
}

// AsError はerrのチェーンから*Errorを取り出します。
// 見つからない場合はKindUnknownのエラーでerrを包んで返します。nilにはnilを返します。
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return &Error{Kind: KindUnknown, Message: MessageUnknown, Cause: err}
}

// IsKind はerrのチェーンに指定種別の*Errorが含まれるかを返します。
func IsKind(err error, kind Kind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}
