package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/blang/semver"
	"github.com/pkg/errors"
)

const systemDatabaseVersionKey = "DatabaseVersion"

// Migrate advances the database schema to the latest version, applying each
// pending migration inside its own transaction.
func (sqlStore *SQLStore) Migrate() error {
	currentVersion, err := sqlStore.getCurrentVersion()
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if !migration.fromVersion.EQ(currentVersion) {
			continue
		}

		sqlStore.logger.Infof("Migrating schema from %s to %s", migration.fromVersion, migration.toVersion)

		tx, err := sqlStore.beginTransaction(sqlStore.db)
		if err != nil {
			return err
		}

		err = migration.migrationFunc(tx)
		if err != nil {
			tx.RollbackUnlessCommitted()
			return errors.Wrapf(err, "failed to migrate schema from %s to %s", migration.fromVersion, migration.toVersion)
		}

		err = sqlStore.setCurrentVersion(tx, migration.toVersion.String())
		if err != nil {
			tx.RollbackUnlessCommitted()
			return errors.Wrap(err, "failed to record new schema version")
		}

		err = tx.Commit()
		if err != nil {
			return err
		}

		currentVersion = migration.toVersion
	}

	return nil
}

func (sqlStore *SQLStore) getCurrentVersion() (semver.Version, error) {
	systemTableExists, err := sqlStore.tableExists("system")
	if err != nil {
		return semver.Version{}, err
	}
	if !systemTableExists {
		return semver.MustParse("0.0.0"), nil
	}

	var versionString string
	err = sqlStore.getBuilder(sqlStore.db, &versionString, sq.
		Select("Value").
		From("System").
		Where("Key = ?", systemDatabaseVersionKey),
	)
	if err == sql.ErrNoRows {
		return semver.MustParse("0.0.0"), nil
	} else if err != nil {
		return semver.Version{}, errors.Wrap(err, "failed to query current schema version")
	}

	return semver.Parse(versionString)
}

func (sqlStore *SQLStore) setCurrentVersion(e execer, version string) error {
	result, err := sqlStore.execBuilder(e, sq.
		Update("System").
		Set("Value", version).
		Where("Key = ?", systemDatabaseVersionKey),
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	_, err = sqlStore.execBuilder(e, sq.
		Insert("System").
		SetMap(map[string]interface{}{
			"Key":   systemDatabaseVersionKey,
			"Value": version,
		}),
	)
	return err
}
