package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"plant_backend/internal/feature/diagnosis/domain/entity"
)

const (
	// ConsultPromptTemplate は追加アドバイス生成のプロンプトです。
	ConsultPromptTemplate = "A home gardener's tomato plant was diagnosed with %q. " +
		"Give three short, practical steps to treat it and one tip to prevent it next season."
	// MaxConditionNameLength は病名の最大文字数（rune数）です。
	MaxConditionNameLength = 100
)

// validConditionName は病名に許可される文字パターンです。
var validConditionName = regexp.MustCompile(`^[\p{L}\p{N}\s\-\.,()']+$`)

// CareAdvisor はプロンプトからアドバイス文を生成します。
type CareAdvisor interface {
	Advise(ctx context.Context, prompt string) (string, error)
}

type consultUsecase struct {
	advisor CareAdvisor
}

// NewConsultUsecase はconsultUsecaseの新しいインスタンスを生成します。
func NewConsultUsecase(a CareAdvisor) *consultUsecase {
	return &consultUsecase{advisor: a}
}

// Consult は病名に対する追加のケアアドバイスを生成します。
func (u *consultUsecase) Consult(ctx context.Context, name string) (*entity.CareAdvice, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrConditionNameRequired
	}
	if utf8.RuneCountInString(name) > MaxConditionNameLength {
		return nil, ErrConditionNameTooLong
	}
	if !validConditionName.MatchString(name) {
		return nil, ErrConditionNameInvalid
	}

	advice, err := u.advisor.Advise(ctx, fmt.Sprintf(ConsultPromptTemplate, name))
	if err != nil {
		return nil, fmt.Errorf("care advisor failed for %q: %w", name, err)
	}
	return &entity.CareAdvice{Name: name, Advice: advice}, nil
}
