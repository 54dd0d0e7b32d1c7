package chatbotRepository

const (
	queryCreateMessage = `
		INSERT INTO seen_messages (
			id,
			from_handle,
			to_handle,
			received,
			responded,
			outcome,
			score,
			sent_to_slack,
			sent_to_user,
			created_at
		) VALUES (
			:id,
			:from_handle,
			:to_handle,
			:received,
			:responded,
			:outcome,
			:score,
			:sent_to_slack,
			:sent_to_user,
			:created_at
		)
	`

	queryGetMessages = `
		SELECT
			id,
			from_handle,
			to_handle,
			received,
			responded,
			outcome,
			score,
			sent_to_slack,
			sent_to_user,
			created_at
		FROM seen_messages
		ORDER BY created_at DESC, id DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountMessages = `
		SELECT COUNT(*) FROM seen_messages
	`

	queryCreateTrace = `
		INSERT INTO traces (
			id,
			request_id,
			body,
			created_at
		) VALUES (
			:id,
			:request_id,
			:body,
			:created_at
		)
	`
)
