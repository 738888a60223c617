package podcastindex

import (
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"
)

// signRequest adds the required authentication headers to a Podcast Index API request
func signRequest(req *http.Request, apiKey, apiSecret, userAgent string) {
	authTime := strconv.FormatInt(time.Now().Unix(), 10)

	// Auth hash: SHA1(apiKey + apiSecret + authTime)
	h := sha1.New()
	h.Write([]byte(apiKey + apiSecret + authTime))
	authHash := hex.EncodeToString(h.Sum(nil))

	req.Header.Set("X-Auth-Date", authTime)
	req.Header.Set("X-Auth-Key", apiKey)
	req.Header.Set("Authorization", authHash)
	req.Header.Set("User-Agent", userAgent)
}
