package store

import (
	"github.com/blang/semver"
)

type migration struct {
	fromVersion   semver.Version
	toVersion     semver.Version
	migrationFunc func(execer) error
}

// migrations defines the set of migrations necessary to advance the database
// to the latest expected version.
//
// Note that the canonical schema is currently obtained by applying all
// migrations to an empty database.
var migrations = []migration{
	{semver.MustParse("0.0.0"), semver.MustParse("0.1.0"),
		func(e execer) error {
			_, err := e.Exec(`
				CREATE TABLE System (
						Key    VARCHAR(64) PRIMARY KEY,
						Value  VARCHAR(1024) NULL
				);
		`)
			if err != nil {
				return err
			}

			_, err = e.Exec(`
				CREATE TABLE Users (
						ID            TEXT PRIMARY KEY NOT NULL,
						Email         TEXT NOT NULL UNIQUE,
						Name          TEXT,
						Admin         BOOLEAN NOT NULL DEFAULT FALSE,
						PasswordHash  TEXT NOT NULL,
						CreateAt      BigInt,
						UpdateAt      BigInt
				);

				CREATE TABLE TranslationRequest (
						ID                  TEXT PRIMARY KEY NOT NULL,
						UserID              TEXT NOT NULL,
						Title               TEXT,
						Description         TEXT,
						SourceLanguage      TEXT,
						TargetLanguage      TEXT,
						Status              TEXT NOT NULL,
						OriginalFileName    TEXT,
						StoredFileName      TEXT,
						TranslatedFileName  TEXT,
						UserComment         TEXT,
						AdminComment        TEXT,
						CreateAt            BigInt,
						UpdateAt            BigInt,
						CompleteAt          BigInt
				);

				ALTER TABLE TranslationRequest
						ADD CONSTRAINT fk_UserID
						FOREIGN KEY (UserID) REFERENCES Users(ID)
				;
		`)
			return err
		},
	},
	{semver.MustParse("0.1.0"), semver.MustParse("0.2.0"),
		func(e execer) error {
			_, err := e.Exec(`
				CREATE TABLE Upload (
						ID          TEXT PRIMARY KEY NOT NULL,
						RequestID   TEXT NOT NULL,
						Kind        TEXT,
						CreateAt    BigInt,
						CompleteAt  BigInt,
						Error       TEXT
				);

				ALTER TABLE Upload
						ADD CONSTRAINT fk_RequestID
						FOREIGN KEY (RequestID) REFERENCES TranslationRequest(ID)
				;
		`)
			return err
		},
	},
}
