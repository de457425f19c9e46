package commerces

import "github.com/shuldan/underc0de-admin/pkg/errors"

var newCommercesCode = errors.WithPrefix("COMMERCES")

var ErrLogoRead = newCommercesCode().New("cannot read logo {{.path}}")
