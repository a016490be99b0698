package postgres

import "github.com/openclub/lendhub/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Club{},
	&entity.Membership{},
	&entity.Item{},
	&entity.BorrowingRequest{},
	&entity.BorrowingTransaction{},
	&entity.AuditLog{},
}
