package judge

// SystemInstruction frames the judgment request. The model sees the
// question and its following messages and must answer with a bare count.
const SystemInstruction = `You are an analyst reviewing a group chat transcript. You will be given one question that was asked in the chat, followed by the numbered messages that came after it. Your task is to count how many of those messages are answers to the question or follow-up discussion of it.

[CRITICAL] Respond with a single integer and nothing else. No explanation, no punctuation, no units.`

// userPromptTemplate expects: question text, threshold, numbered window lines.
const userPromptTemplate = `Question asked in the chat:
%q

Count the messages below that are, with probability at least %.2f, answers to this question or follow-up discussion of it. Messages that follow:
%s
Output a single integer.`
