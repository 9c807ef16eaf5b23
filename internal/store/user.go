package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/doctrans/dtrs/model"
)

// UserTableName is the table holding account rows.
const UserTableName = "Users"

var userSelect sq.SelectBuilder

func init() {
	userSelect = sq.
		Select(
			"ID",
			"Email",
			"Name",
			"Admin",
			"PasswordHash",
			"CreateAt",
			"UpdateAt",
		).
		From(UserTableName)
}

// GetUser fetches one user by ID, returning nil when no row exists.
func (sqlStore *SQLStore) GetUser(id string) (*model.User, error) {
	return sqlStore.getUserByField("ID", id)
}

// GetUserByEmail fetches one user by email, returning nil when no row
// exists.
func (sqlStore *SQLStore) GetUserByEmail(email string) (*model.User, error) {
	return sqlStore.getUserByField("Email", email)
}

func (sqlStore *SQLStore) getUserByField(field, value string) (*model.User, error) {
	user := new(model.User)
	err := sqlStore.getBuilder(sqlStore.db, user,
		userSelect.Where(field+" = ?", value))

	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}

	return user, nil
}

// GetUsers fetches every account.
func (sqlStore *SQLStore) GetUsers() ([]*model.User, error) {
	users := []*model.User{}
	err := sqlStore.selectBuilder(sqlStore.db, &users,
		userSelect.OrderBy("CreateAt ASC"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get users")
	}

	return users, nil
}

// CreateUser stores a new account row.
func (sqlStore *SQLStore) CreateUser(user *model.User) error {
	_, err := sqlStore.execBuilder(sqlStore.db, sq.
		Insert(UserTableName).
		SetMap(map[string]interface{}{
			"ID":           user.ID,
			"Email":        user.Email,
			"Name":         user.Name,
			"Admin":        user.Admin,
			"PasswordHash": user.PasswordHash,
			"CreateAt":     user.CreateAt,
			"UpdateAt":     user.UpdateAt,
		}),
	)
	return errors.Wrap(err, "failed to store user")
}

// UpdateUser writes the mutable fields of an account back to the database.
func (sqlStore *SQLStore) UpdateUser(user *model.User) error {
	_, err := sqlStore.execBuilder(sqlStore.db, sq.
		Update(UserTableName).
		SetMap(map[string]interface{}{
			"Name":         user.Name,
			"Admin":        user.Admin,
			"PasswordHash": user.PasswordHash,
			"UpdateAt":     user.UpdateAt,
		}).
		Where("ID = ?", user.ID),
	)
	return errors.Wrap(err, "failed to update user")
}
