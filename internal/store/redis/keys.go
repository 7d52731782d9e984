package redis

import "fmt"

const (
	// KeyPrefixSession is the prefix for session keys
	KeyPrefixSession = "javadocs:session:"
	// KeyTopicViews is the hash of topic slug -> view count
	KeyTopicViews = "javadocs:views"
)

// SessionKey returns the Redis key for a session by ID
func SessionKey(id string) string {
	return KeyPrefixSession + id
}

// TopicViewsKey returns the key of the topic view counters hash
func TopicViewsKey() string {
	return KeyTopicViews
}

// ExtractSessionID extracts the session ID from a Redis key
func ExtractSessionID(key string) (string, error) {
	if len(key) <= len(KeyPrefixSession) || key[:len(KeyPrefixSession)] != KeyPrefixSession {
		return "", fmt.Errorf("invalid session key: %s", key)
	}
	return key[len(KeyPrefixSession):], nil
}
