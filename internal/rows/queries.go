package rows

const queryListCards = `
	SELECT row_index, processed, external_id, name, catalog_number,
	       foil_variant, rarity, set_name, condition_code, defect_note,
	       defect_location, start_price
	FROM cards
	ORDER BY row_index`

const queryMarkProcessed = `
	UPDATE cards
	SET processed = true, processed_at = now(), updated_at = now()
	WHERE row_index = $1`

const queryUpsertCard = `
	INSERT INTO cards (
		row_index, processed, external_id, name, catalog_number,
		foil_variant, rarity, set_name, condition_code, defect_note,
		defect_location, start_price
	) VALUES (
		@row_index, @processed, @external_id, @name, @catalog_number,
		@foil_variant, @rarity, @set_name, @condition_code, @defect_note,
		@defect_location, @start_price
	)
	ON CONFLICT (row_index) DO UPDATE SET
		external_id     = EXCLUDED.external_id,
		name            = EXCLUDED.name,
		catalog_number  = EXCLUDED.catalog_number,
		foil_variant    = EXCLUDED.foil_variant,
		rarity          = EXCLUDED.rarity,
		set_name        = EXCLUDED.set_name,
		condition_code  = EXCLUDED.condition_code,
		defect_note     = EXCLUDED.defect_note,
		defect_location = EXCLUDED.defect_location,
		start_price     = EXCLUDED.start_price,
		processed       = cards.processed OR EXCLUDED.processed,
		updated_at      = now()`

const queryInsertRun = `
	INSERT INTO listing_runs (
		id, started_at, finished_at, listed, skipped, failed,
		total_fees, breaker_tripped, canceled, outcomes
	) VALUES (
		@id, @started_at, @finished_at, @listed, @skipped, @failed,
		@total_fees, @breaker_tripped, @canceled, @outcomes
	)`

const queryLatestRun = `
	SELECT id, started_at, finished_at, listed, skipped, failed,
	       total_fees, breaker_tripped, canceled, outcomes
	FROM listing_runs
	ORDER BY started_at DESC
	LIMIT 1`
