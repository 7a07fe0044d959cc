package repository

import "errors"

// ErrNotFound indica que o registro alvo não existe no banco
var ErrNotFound = errors.New("registro não encontrado")
