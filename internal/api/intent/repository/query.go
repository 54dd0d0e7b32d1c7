package intentRepository

const (
	queryCreateIntent = `
		INSERT INTO intents (
			id,
			name,
			response_text,
			created_at,
			updated_at
		) VALUES (
			:id,
			:name,
			:response_text,
			:created_at,
			:updated_at
		)
	`

	queryGetIntentByID = `
		SELECT
			id,
			name,
			response_text,
			created_at,
			updated_at
		FROM intents
		WHERE id = :id
	`

	queryGetAllIntents = `
		SELECT
			id,
			name,
			response_text,
			created_at,
			updated_at
		FROM intents
		ORDER BY created_at, id
	`

	queryUpdateIntent = `
		UPDATE intents
		SET
			name = :name,
			response_text = :response_text,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteIntent = `
		DELETE FROM intents
		WHERE id = :id
	`

	queryDeleteAllIntents = `
		DELETE FROM intents
	`

	queryCreateExample = `
		INSERT INTO examples (
			id,
			sample,
			intent_id,
			created_at
		) VALUES (
			:id,
			:sample,
			:intent_id,
			:created_at
		)
	`

	queryGetExampleByID = `
		SELECT
			id,
			sample,
			intent_id,
			created_at
		FROM examples
		WHERE id = :id
	`

	queryGetExampleBySample = `
		SELECT
			id,
			sample,
			intent_id,
			created_at
		FROM examples
		WHERE sample = :sample
		ORDER BY created_at, id
		LIMIT 1
	`

	queryGetAllExamples = `
		SELECT
			id,
			sample,
			intent_id,
			created_at
		FROM examples
		ORDER BY created_at, id
	`

	queryGetExamplesByIntentID = `
		SELECT
			id,
			sample,
			intent_id,
			created_at
		FROM examples
		WHERE intent_id = :intent_id
		ORDER BY created_at, id
	`

	queryUpdateExample = `
		UPDATE examples
		SET
			sample = :sample,
			intent_id = :intent_id
		WHERE id = :id
	`

	queryDeleteExample = `
		DELETE FROM examples
		WHERE id = :id
	`

	queryDeleteExamplesByIntentID = `
		DELETE FROM examples
		WHERE intent_id = :intent_id
	`

	queryDeleteAllExamples = `
		DELETE FROM examples
	`
)
