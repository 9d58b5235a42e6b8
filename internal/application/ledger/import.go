package ledger

import "context"

// ImportResult es el resultado por fila de una importación masiva.
type ImportResult struct {
	Index int
	ID    string
	Err   error
}

// Import registra un lote de transacciones, cada una en su propia unidad de
// trabajo: una fila que falla no afecta a las demás. Las unidades de medida
// desconocidas se resuelven con ratio 1 (política tolerante exclusiva de la
// importación masiva; la captura interactiva las rechaza).
func (uc *LedgerUseCase) Import(ctx context.Context, inputs []TransactionInput) []ImportResult {
	results := make([]ImportResult, 0, len(inputs))
	for i, in := range inputs {
		id, err := uc.submit(ctx, in, true)
		results = append(results, ImportResult{Index: i, ID: id, Err: err})
	}
	return results
}
