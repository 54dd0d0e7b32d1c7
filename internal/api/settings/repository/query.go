package settingsRepository

const (
	configRowID = 1

	queryGetConfig = `
		SELECT
			document
		FROM app_config
		WHERE id = :id
	`

	queryUpsertConfig = `
		INSERT INTO app_config (
			id,
			document,
			updated_at
		) VALUES (
			:id,
			:document,
			:updated_at
		)
		ON CONFLICT (id) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at
	`
)
