package reader

import (
	"github.com/alecthomas/participle/v2/lexer"
)

type netlistFile struct {
	Statements []*statement `Newline* ( @@ Newline* )*`
}

type statement struct {
	Subckt    *subcktDef     `  @@`
	Instance  *instanceStmt  `| @@`
	Directive *directiveStmt `| @@`
}

type subcktDef struct {
	Pos lexer.Position

	Name   string          `"subckt" @Ident`
	Ports  []string        `( "(" @( Ident | Number )* ")" | @( Ident | Number )* ) Newline+`
	Params []*param        `( "parameters" @@+ Newline+ )*`
	Body   []*instanceStmt `( @@ Newline+ )*`
	End    *subcktEnd      `@@`
}

type subcktEnd struct {
	Pos lexer.Position

	Name string `"ends" @Ident?`
}

// instanceStmt is "label (nodes) master params".
type instanceStmt struct {
	Pos lexer.Position

	Label  string   `@Ident`
	Nodes  []string `"(" @( Ident | Number )* ")"`
	Master string   `@Ident`
	Params []*param `@@*`
}

type directiveStmt struct {
	Name   string   `@Ident`
	Params []*param `@@*`
}

// param is "key=value", or a bare key used as a flag.
type param struct {
	Key   string `@( Ident | Number | String )`
	Value *value `( "=" @@ )?`
}

type value struct {
	Number *string    `  @Number`
	String *string    `| @String`
	Ident  *string    `| @Ident`
	List   *valueList `| @@`
}

type valueList struct {
	Items []*value `"[" @@* "]"`
}
