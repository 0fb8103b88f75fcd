// Package docs holds the OpenAPI document served under /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/health": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Liveness probe",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.HealthResp"
                        }
                    }
                }
            }
        },
        "/api/posts": {
            "get": {
                "tags": [
                    "posts"
                ],
                "summary": "List posts",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Page number, from 1",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page size (max 100)",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "event | lostfound | announcement",
                        "name": "type",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListPostsResp"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "posts"
                ],
                "summary": "Create a post",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreatePostReq"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Post"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/posts/seed": {
            "post": {
                "tags": [
                    "posts"
                ],
                "summary": "Reset the feed to demo data",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.SeedResp"
                        }
                    },
                    "500": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/posts/{id}": {
            "get": {
                "tags": [
                    "posts"
                ],
                "summary": "Get a post",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Post ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Post"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/posts/{id}/reactions": {
            "post": {
                "tags": [
                    "posts"
                ],
                "summary": "Add a reaction to a post",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Post ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ReactionReq"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ReactionResp"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/posts/{id}/rsvp": {
            "post": {
                "tags": [
                    "posts"
                ],
                "summary": "RSVP to an event",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Post ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.RSVPReq"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.RSVPResp"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/comments": {
            "post": {
                "tags": [
                    "comments"
                ],
                "description": "Content starting with \"/meme \" (after trimming) is replaced by a generated image.\nAny other comment needs non-blank content and is rejected with 400 otherwise.",
                "summary": "Comment on a post",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateCommentReq"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Comment"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/comments/post/{postId}": {
            "get": {
                "tags": [
                    "comments"
                ],
                "summary": "List a post's comments",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Post ID",
                        "name": "postId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListCommentsResp"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/comments/post/{postId}/thread": {
            "get": {
                "tags": [
                    "comments"
                ],
                "summary": "Get a post's comment tree",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Post ID",
                        "name": "postId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ThreadResp"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/comments/{id}/reactions": {
            "post": {
                "tags": [
                    "comments"
                ],
                "summary": "Add a reaction to a comment",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comment ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ReactionReq"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ReactionResp"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/ai/parse": {
            "post": {
                "tags": [
                    "ai"
                ],
                "summary": "Draft a post from a prompt",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.PromptReq"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.DraftResp"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/ai/toxicity": {
            "post": {
                "tags": [
                    "ai"
                ],
                "summary": "Check text for toxicity",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.TextReq"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ai.ToxicityResult"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/ai/rewrite": {
            "post": {
                "tags": [
                    "ai"
                ],
                "summary": "Rewrite text to be non-toxic",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.TextReq"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.RewriteResp"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/ai/analyze": {
            "post": {
                "tags": [
                    "ai"
                ],
                "summary": "Guess the post type of a prompt",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.PromptReq"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ai.Analysis"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/ai/image": {
            "post": {
                "tags": [
                    "ai"
                ],
                "summary": "Generate an image",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ImageReq"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ai.Image"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/upload": {
            "post": {
                "tags": [
                    "upload"
                ],
                "summary": "Upload a file",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "file",
                        "description": "File to store",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.UploadResp"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "multipart/form-data"
                ]
            }
        }
    },
    "definitions": {
        "models.RSVP": {
            "type": "object",
            "properties": {
                "going": {
                    "type": "integer"
                },
                "interested": {
                    "type": "integer"
                },
                "notGoing": {
                    "type": "integer"
                }
            }
        },
        "models.Post": {
            "type": "object",
            "properties": {
                "_id": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "authorSid": {
                    "type": "string"
                },
                "eventDate": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "lostFoundType": {
                    "type": "string"
                },
                "item": {
                    "type": "string"
                },
                "lfLocation": {
                    "type": "string"
                },
                "imageUrl": {
                    "type": "string"
                },
                "department": {
                    "type": "string"
                },
                "attachmentUrl": {
                    "type": "string"
                },
                "attachmentType": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                },
                "rsvp": {
                    "$ref": "#/definitions/models.RSVP"
                },
                "reactions": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                }
            }
        },
        "models.Comment": {
            "type": "object",
            "properties": {
                "_id": {
                    "type": "string"
                },
                "postId": {
                    "type": "string"
                },
                "authorSid": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                },
                "parentId": {
                    "type": "string"
                },
                "memeUrl": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                },
                "reactions": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                }
            }
        },
        "thread.Node": {
            "type": "object",
            "properties": {
                "_id": {
                    "type": "string"
                },
                "postId": {
                    "type": "string"
                },
                "authorSid": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                },
                "parentId": {
                    "type": "string"
                },
                "memeUrl": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                },
                "reactions": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                },
                "children": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/thread.Node"
                    }
                }
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "details": {
                    "type": "string"
                }
            }
        },
        "dto.HealthResp": {
            "type": "object",
            "properties": {
                "ok": {
                    "type": "boolean"
                }
            }
        },
        "dto.ListPostsResp": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Post"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "dto.SeedResp": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "posts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Post"
                    }
                }
            }
        },
        "dto.CreatePostReq": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "eventDate": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "lostFoundType": {
                    "type": "string"
                },
                "item": {
                    "type": "string"
                },
                "lfLocation": {
                    "type": "string"
                },
                "imageUrl": {
                    "type": "string"
                },
                "department": {
                    "type": "string"
                },
                "attachmentUrl": {
                    "type": "string"
                },
                "attachmentType": {
                    "type": "string"
                }
            },
            "required": [
                "type",
                "title"
            ]
        },
        "dto.ReactionReq": {
            "type": "object",
            "properties": {
                "emoji": {
                    "type": "string"
                }
            },
            "required": [
                "emoji"
            ]
        },
        "dto.ReactionResp": {
            "type": "object",
            "properties": {
                "ok": {
                    "type": "boolean"
                },
                "reactions": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                }
            }
        },
        "dto.RSVPReq": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "enum": [
                        "going",
                        "interested",
                        "notGoing"
                    ]
                }
            },
            "required": [
                "status"
            ]
        },
        "dto.RSVPResp": {
            "type": "object",
            "properties": {
                "ok": {
                    "type": "boolean"
                },
                "rsvp": {
                    "$ref": "#/definitions/models.RSVP"
                }
            }
        },
        "dto.CreateCommentReq": {
            "type": "object",
            "properties": {
                "postId": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                },
                "parentId": {
                    "type": "string"
                }
            },
            "required": [
                "postId"
            ]
        },
        "dto.ListCommentsResp": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Comment"
                    }
                }
            }
        },
        "dto.ThreadResp": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/thread.Node"
                    }
                }
            }
        },
        "dto.PromptReq": {
            "type": "object",
            "properties": {
                "prompt": {
                    "type": "string"
                }
            },
            "required": [
                "prompt"
            ]
        },
        "dto.TextReq": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "string"
                }
            },
            "required": [
                "text"
            ]
        },
        "ai.Draft": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "eventDate": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "lostFoundType": {
                    "type": "string"
                },
                "item": {
                    "type": "string"
                },
                "department": {
                    "type": "string"
                },
                "attachmentType": {
                    "type": "string"
                }
            }
        },
        "dto.DraftResp": {
            "type": "object",
            "properties": {
                "draft": {
                    "$ref": "#/definitions/ai.Draft"
                }
            }
        },
        "dto.RewriteResp": {
            "type": "object",
            "properties": {
                "rewritten": {
                    "type": "string"
                }
            }
        },
        "ai.ToxicityResult": {
            "type": "object",
            "properties": {
                "flagged": {
                    "type": "boolean"
                },
                "categories": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "boolean"
                    }
                }
            }
        },
        "ai.Analysis": {
            "type": "object",
            "properties": {
                "postType": {
                    "type": "string"
                },
                "confidence": {
                    "type": "number"
                },
                "enhancedPrompt": {
                    "type": "string"
                },
                "postDescription": {
                    "type": "string"
                },
                "reasoning": {
                    "type": "string"
                },
                "originalPrompt": {
                    "type": "string"
                },
                "source": {
                    "type": "string"
                }
            }
        },
        "dto.ImageReq": {
            "type": "object",
            "properties": {
                "prompt": {
                    "type": "string"
                },
                "size": {
                    "type": "string",
                    "enum": [
                        "1024x1024",
                        "1792x1024",
                        "1024x1792"
                    ]
                },
                "enhance": {
                    "type": "boolean"
                }
            },
            "required": [
                "prompt"
            ]
        },
        "ai.Image": {
            "type": "object",
            "properties": {
                "imageUrl": {
                    "type": "string"
                },
                "revisedPrompt": {
                    "type": "string"
                },
                "finalPrompt": {
                    "type": "string"
                },
                "analysis": {
                    "$ref": "#/definitions/ai.Analysis"
                }
            }
        },
        "dto.UploadResp": {
            "type": "object",
            "properties": {
                "url": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:4000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Campus Feed API",
	Description:      "Anonymous campus feed: posts, threaded comments, reactions, RSVPs and AI helpers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
