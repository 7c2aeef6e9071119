package schema

// InstructionSet 属性包形式的通用 schema，loader / stake / market 共用
var InstructionSet = MustParse(`{
  "type": "record",
  "name": "InstructionSet",
  "namespace": "io.solana.decoder.bag",
  "fields": [
    {"name": "function", "type": {
      "type": "record",
      "name": "Function",
      "fields": [
        {"name": "tx_hash", "type": "string"},
        {"name": "program", "type": "string"},
        {"name": "name", "type": "string"},
        {"name": "timestamp", "type": "long"}
      ]
    }},
    {"name": "properties", "type": {
      "type": "array",
      "items": {
        "type": "record",
        "name": "Property",
        "fields": [
          {"name": "key", "type": "string"},
          {"name": "value", "type": "string"},
          {"name": "parent_key", "type": "string"},
          {"name": "timestamp", "type": "long"}
        ]
      }
    }}
  ]
}`)
