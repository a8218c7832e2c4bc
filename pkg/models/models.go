package models

// Domain models matching the database schema in db/migrations/0001_init.sql.
// JSON field names follow the external API contract (Portuguese, camelCase).
// Timestamps (criadoEm/atualizadoEm) are UTC unix milliseconds set by the
// repositories on insert/update.

type Cliente struct {
	IDCliente    int64  `json:"idCliente" db:"idCliente"`
	Nome         string `json:"nome" db:"nome"`
	Endereco     string `json:"endereco" db:"endereco"`
	Telefone     string `json:"telefone" db:"telefone"`
	CpfCnpj      string `json:"cpfCnpj" db:"cpfCnpj"`
	RgIe         string `json:"rgIe" db:"rgIe"`
	CriadoEm     int64  `json:"criadoEm" db:"criadoEm"`
	AtualizadoEm int64  `json:"atualizadoEm" db:"atualizadoEm"`
}

type Engenheiro struct {
	IDEngenheiro            int64    `json:"idEngenheiro" db:"idEngenheiro"`
	Nome                    string   `json:"nome" db:"nome"`
	Telefone                string   `json:"telefone" db:"telefone"`
	Endereco                string   `json:"endereco" db:"endereco"`
	Crea                    string   `json:"crea" db:"crea"`
	CertificacoesAdicionais []string `json:"certificacoesAdicionais,omitempty" db:"certificacoesAdicionais"`
	CriadoEm                int64    `json:"criadoEm" db:"criadoEm"`
	AtualizadoEm            int64    `json:"atualizadoEm" db:"atualizadoEm"`
}

type Empreiteira struct {
	IDEmp        int64    `json:"idEmp" db:"idEmp"`
	CnpjCpf      string   `json:"cnpjCpf" db:"cnpjCpf"`
	Nome         string   `json:"nome" db:"nome"`
	Telefone     string   `json:"telefone" db:"telefone"`
	Email        string   `json:"email" db:"email"`
	Fundacao     *string  `json:"fundacao,omitempty" db:"fundacao"`
	Licencas     []string `json:"licencas,omitempty" db:"licencas"`
	CriadoEm     int64    `json:"criadoEm" db:"criadoEm"`
	AtualizadoEm int64    `json:"atualizadoEm" db:"atualizadoEm"`
}

// Trabalhador carries a nullable self reference: idGerente points at the
// worker's manager and becomes null when the manager row is deleted.
type Trabalhador struct {
	IDEmpregado  int64   `json:"idEmpregado" db:"idEmpregado"`
	IDGerente    *int64  `json:"idGerente" db:"idGerente"`
	Nome         string  `json:"nome" db:"nome"`
	CpfCnpj      string  `json:"cpfCnpj" db:"cpfCnpj"`
	Rgie         string  `json:"rgie" db:"rgie"`
	Salario      float64 `json:"salario" db:"salario"`
	Ctps         string  `json:"ctps" db:"ctps"`
	Funcao       string  `json:"funcao" db:"funcao"`
	CriadoEm     int64   `json:"criadoEm" db:"criadoEm"`
	AtualizadoEm int64   `json:"atualizadoEm" db:"atualizadoEm"`
}

// Obra links a Cliente and an Engenheiro. Cliente/Engenheiro are populated
// only when the repository loads the relations (GetObra).
type Obra struct {
	IDObra          int64       `json:"idObra" db:"idObra"`
	IDCliente       int64       `json:"idCliente" db:"idCliente"`
	IDEngenheiro    int64       `json:"idEngenheiro" db:"idEngenheiro"`
	Tipoobra        string      `json:"tipoobra" db:"tipoobra"`
	Enderecoobra    string      `json:"enderecoobra" db:"enderecoobra"`
	DataInicio      string      `json:"dataInicio" db:"dataInicio"`
	PrevTermino     string      `json:"prevTermino" db:"prevTermino"`
	ValorTotal      float64     `json:"valorTotal" db:"valorTotal"`
	FormaPagamento  string      `json:"formaPagamento" db:"formaPagamento"`
	Status          string      `json:"status" db:"status"`
	AlvarasLicencas []string    `json:"alvarasLicencas,omitempty" db:"alvarasLicencas"`
	Contrato        *string     `json:"contrato,omitempty" db:"contrato"`
	Cliente         *Cliente    `json:"cliente,omitempty" db:"-"`
	Engenheiro      *Engenheiro `json:"engenheiro,omitempty" db:"-"`
	CriadoEm        int64       `json:"criadoEm" db:"criadoEm"`
	AtualizadoEm    int64       `json:"atualizadoEm" db:"atualizadoEm"`
}

type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password"`
	Role         string `json:"role" db:"role"`
	CriadoEm     int64  `json:"criadoEm" db:"criadoEm"`
	AtualizadoEm int64  `json:"atualizadoEm" db:"atualizadoEm"`
}
