package utils

import (
	"crypto/rand"
	"encoding/hex"
	"hash/fnv"
)

// GenerateID создает простой уникальный ID для сессий
// (замена UUID, чтобы не тянуть лишнюю зависимость).
func GenerateID() string {
	b := make([]byte, 8) // 16 символов hex
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// StringToSeed превращает кодовую фразу в детерминированный сид.
// Одна и та же фраза всегда дает одну и ту же кампанию.
func StringToSeed(phrase string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(phrase))
	return int64(h.Sum64())
}
