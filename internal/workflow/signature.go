package workflow

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ComputeSignatureHash 计算签名摘要
// 对 (签名人, 请求, 时间戳) 的确定性 SHA-256 摘要:
// 相同输入总是产生相同输出,任一输入变化输出随之变化
func ComputeSignatureHash(signerID string, requestID string, signedAt time.Time) string {
	payload := fmt.Sprintf("%s|%s|%s", signerID, requestID, signedAt.UTC().Format(time.RFC3339Nano))
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
