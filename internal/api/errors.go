// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package api

// Error codes carried in models.APIError.Code.
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeBodyTooLarge    = "BODY_TOO_LARGE"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeTextTooShort    = "TEXT_TOO_SHORT"
	ErrCodeInvalidID       = "INVALID_ID"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeRateLimited     = "RATE_LIMIT_EXCEEDED"
	ErrCodeRequestTimeout  = "REQUEST_TIMEOUT"
	ErrCodeRecommendFailed = "RECOMMENDATION_ERROR"
	ErrCodeIndexNotReady   = "INDEX_NOT_READY"
)

// User-facing messages. The UI is Turkish, so are these.
const (
	msgTextTooShort = "Metin çok kısa."
	msgNotFound     = "Film bulunamadı"
	msgInvalidJSON  = "Geçersiz istek gövdesi."
	msgBodyTooLarge = "İstek gövdesi çok büyük."
	msgInvalidID    = "Geçersiz film kimliği."
	msgRateLimited  = "Çok fazla istek gönderdin, lütfen biraz bekle."
	msgTimeout      = "İstek zaman aşımına uğradı, lütfen tekrar dene."
	msgFailed       = "Öneriler şu anda hazırlanamıyor, lütfen tekrar dene."
	msgNotReady     = "Öneri dizini henüz hazır değil."
)
