package notifications

import "github.com/shuldan/underc0de-admin/pkg/errors"

var newNotificationsCode = errors.WithPrefix("NOTIFICATIONS")

var (
	ErrInvalidAudience = newNotificationsCode().New("unknown audience {{.audience}}, expected todos, usersPro or normalUsers")
	ErrNoAuthor        = newNotificationsCode().New("sign in before writing notifications")
)
