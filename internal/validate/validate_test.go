package validate_test

import (
	"context"
	"testing"

	"github.com/construsys/construtora/internal/validate"
)

func TestValidatorCheck(t *testing.T) {
	v, err := validate.New()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		name    string
		schema  string
		payload string
		wantErr bool
	}{
		{
			name:    "ClienteCreate_Valid",
			schema:  "cliente_create",
			payload: `{"nome":"A","endereco":"B","telefone":"C","cpfCnpj":"D","rgIe":"E"}`,
		},
		{
			name:    "ClienteCreate_MissingField",
			schema:  "cliente_create",
			payload: `{"nome":"A","endereco":"B","telefone":"C","cpfCnpj":"D"}`,
			wantErr: true,
		},
		{
			name:    "ClienteCreate_EmptyString",
			schema:  "cliente_create",
			payload: `{"nome":"","endereco":"B","telefone":"C","cpfCnpj":"D","rgIe":"E"}`,
			wantErr: true,
		},
		{
			name:    "ClienteUpdate_PartialIsValid",
			schema:  "cliente_update",
			payload: `{"telefone":"novo"}`,
		},
		{
			name:    "ClienteUpdate_PresentButEmpty",
			schema:  "cliente_update",
			payload: `{"telefone":""}`,
			wantErr: true,
		},
		{
			name:    "TrabalhadorCreate_NullManager",
			schema:  "trabalhador_create",
			payload: `{"idGerente":null,"nome":"A","cpfCnpj":"B","rgie":"C","salario":100,"ctps":"D","funcao":"E"}`,
		},
		{
			name:    "TrabalhadorCreate_NegativeSalario",
			schema:  "trabalhador_create",
			payload: `{"nome":"A","cpfCnpj":"B","rgie":"C","salario":-1,"ctps":"D","funcao":"E"}`,
			wantErr: true,
		},
		{
			name:    "ObraCreate_WrongType",
			schema:  "obra_create",
			payload: `{"idCliente":"1","idEngenheiro":2,"tipoobra":"a","enderecoobra":"b","dataInicio":"c","prevTermino":"d","valorTotal":1,"formaPagamento":"e","status":"f"}`,
			wantErr: true,
		},
		{
			name:    "ObraUpdate_StatusOnly",
			schema:  "obra_update",
			payload: `{"status":"em andamento"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Check(ctx, tt.schema, []byte(tt.payload))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected payload error")
				}
				if !validate.IsPayloadError(err) {
					t.Fatalf("expected *PayloadError, got %T: %v", err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatorUnknownSchema(t *testing.T) {
	v, err := validate.New()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	err = v.Check(context.Background(), "nope_create", []byte(`{}`))
	if err == nil || validate.IsPayloadError(err) {
		t.Fatalf("expected a plain error for unknown schema, got %v", err)
	}
}
