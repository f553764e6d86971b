package classes

// TSQueries matches class declarations that sit directly under the program
// node, either bare or wrapped in an export statement.
//
// Each match captures:
//   - @class.name - the class identifier
//   - @class.definition - the class declaration node (decorators, body)
//   - @class.export - the wrapping export statement, when present; decorators
//     written before "export" hang off this node
//
// Classes nested in functions, namespaces or other classes never match.
const TSQueries = `
; class Foo {}
; @Component class Foo {}
(program
  (class_declaration
    name: (type_identifier) @class.name
  ) @class.definition
)

; export class Foo {}
; export default class Foo {}
; @Component export default class Foo {}
(program
  (export_statement
    declaration: (class_declaration
      name: (type_identifier) @class.name
    ) @class.definition
  ) @class.export
)

; abstract class Base {}
(program
  (abstract_class_declaration
    name: (type_identifier) @class.name
  ) @class.definition
)

; export abstract class Base {}
(program
  (export_statement
    declaration: (abstract_class_declaration
      name: (type_identifier) @class.name
    ) @class.definition
  ) @class.export
)
`
