package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

// HeaderClientID заголовок, через который гейтвей передаёт ID клиента
const HeaderClientID = "X-Client-ID"

type contextKey string

const clientIDKey contextKey = "clientID"

// Auth проверяет наличие валидного X-Client-ID и кладёт его в контекст запроса.
// Аутентификацию выполняет гейтвей; сервис доверяет заголовку.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIDStr := r.Header.Get(HeaderClientID)
		if clientIDStr == "" {
			respondUnauthorized(w, "отсутствует заголовок X-Client-ID")
			return
		}

		clientID, err := strconv.ParseInt(clientIDStr, 10, 64)
		if err != nil || clientID <= 0 {
			respondUnauthorized(w, "некорректный заголовок X-Client-ID")
			return
		}

		ctx := context.WithValue(r.Context(), clientIDKey, clientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientID извлекает ID клиента из контекста запроса
func GetClientID(ctx context.Context) (int64, bool) {
	clientID, ok := ctx.Value(clientIDKey).(int64)
	return clientID, ok
}

// Локальный respond, чтобы не тянуть handlers и не создавать цикл импортов
func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
