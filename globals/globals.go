package globals

import (
	"context"
	"os"
)

var (
	JwtSecret  = []byte(getenv("JWT_SECRET", "dev_only_secret"))
	QRSecret   = []byte(getenv("QR_SECRET", "dev_only_qr_secret"))
	MongoURI   = getenv("MONGO_URI", "mongodb://localhost:27017")
	RedisAddr  = getenv("REDIS_ADDR", "localhost:6379")
	UploadRoot = getenv("UPLOAD_ROOT", "./static")
)

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

var Ctx = context.Background()

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
